package services

import (
	"fmt"

	"github.com/jakechorley/maintenance-tracker/internal/config"
	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling/rules"
	"github.com/jakechorley/maintenance-tracker/pkg/core/specialization"
	"github.com/jakechorley/maintenance-tracker/pkg/metrics"
)

// Engine bundles the configured detector with the inputs every assignment service needs
type Engine struct {
	Detector   *scheduling.Detector
	Normalizer *specialization.Normalizer
	Standing   []StandingAssignment

	// CapScope is the scope of the per-worker-per-unit cap the Detector enforces
	CapScope scheduling.UnitCapScope

	// Metrics may be nil
	Metrics *metrics.Recorder
}

// NewEngine builds an Engine from config
func NewEngine(cfg *config.Config, recorder *metrics.Recorder) (*Engine, error) {
	normalizer := specialization.NewNormalizer(cfg.Aliases())

	standing, err := convertStandingAssignments(cfg.StandingAssignments)
	if err != nil {
		return nil, fmt.Errorf("failed to convert standing assignments: %w", err)
	}

	return &Engine{
		Detector:   rules.NewDefaultDetector(normalizer, cfg.MaxAssignmentsPerWorkerPerUnit, cfg.CapScope()),
		Normalizer: normalizer,
		Standing:   standing,
		CapScope:   cfg.CapScope(),
		Metrics:    recorder,
	}, nil
}
