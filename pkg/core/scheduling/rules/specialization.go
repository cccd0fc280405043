package rules

import (
	"fmt"
	"strings"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
	"github.com/jakechorley/maintenance-tracker/pkg/core/specialization"
)

// SpecializationRule rejects workers whose trade cannot handle the required work.
//
// Fires:
//   - When RequiredSpecialization is set and the worker's canonical category is neither
//     General Maintenance nor the required canonical category
//
// Never waived for emergencies.
type SpecializationRule struct {
	normalizer *specialization.Normalizer
}

// NewSpecializationRule creates a new SpecializationRule using the given normalizer
func NewSpecializationRule(normalizer *specialization.Normalizer) *SpecializationRule {
	return &SpecializationRule{normalizer: normalizer}
}

func (r *SpecializationRule) Name() string {
	return "Specialization"
}

func (r *SpecializationRule) Evaluate(candidate scheduling.AssignmentCandidate, snapshot scheduling.Snapshot) (bool, scheduling.ValidationResult) {
	if strings.TrimSpace(candidate.RequiredSpecialization) == "" {
		return false, scheduling.ValidationResult{}
	}

	if r.normalizer.IsCompatible(candidate.WorkerSpecialization, candidate.RequiredSpecialization) {
		return false, scheduling.ValidationResult{}
	}

	workerCategory := r.normalizer.Canonicalize(candidate.WorkerSpecialization)
	if workerCategory == "" {
		workerCategory = "Unspecified"
	}
	requiredCategory := r.normalizer.Canonicalize(candidate.RequiredSpecialization)

	return true, scheduling.Conflict(
		scheduling.ConflictSpecializationMismatch,
		fmt.Sprintf("%s cannot handle %s work", workerCategory, requiredCategory),
	)
}
