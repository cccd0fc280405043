package rules

import (
	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
	"github.com/jakechorley/maintenance-tracker/pkg/core/specialization"
)

// Default returns the standard rule list in priority order:
// specialization, worker double-booking, then the unit-level scan.
func Default(normalizer *specialization.Normalizer, maxPerWorker int, scope scheduling.UnitCapScope) []scheduling.Rule {
	return []scheduling.Rule{
		NewSpecializationRule(normalizer),
		NewWorkerDoubleBookingRule(),
		NewUnitConflictRule(maxPerWorker, scope),
	}
}

// NewDefaultDetector builds a Detector with the Default rules
func NewDefaultDetector(normalizer *specialization.Normalizer, maxPerWorker int, scope scheduling.UnitCapScope) *scheduling.Detector {
	return scheduling.NewDetector(Default(normalizer, maxPerWorker, scope)...)
}
