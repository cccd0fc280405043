package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
)

// Recorder counts assignment decisions. Counters live in their own registry so a CLI run
// can dump them to a node-exporter textfile without touching the global registry.
type Recorder struct {
	registry      *prometheus.Registry
	validations   *prometheus.CounterVec
	cancellations prometheus.Counter
	flagged       prometheus.Counter
}

// NewRecorder creates a Recorder with a fresh registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maintenance",
			Name:      "assignment_validations_total",
			Help:      "Assignment validations by conflict type (None for accepted candidates).",
		}, []string{"conflict_type", "emergency"}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "maintenance",
			Name:      "emergency_cancellations_total",
			Help:      "Assignments cancelled by emergency override.",
		}),
		flagged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "maintenance",
			Name:      "emergency_conflicts_total",
			Help:      "Emergency assignments left in place but flagged for manual attention.",
		}),
	}

	r.registry.MustRegister(r.validations, r.cancellations, r.flagged)
	return r
}

// ObserveValidation records one validation result. A nil Recorder records nothing.
func (r *Recorder) ObserveValidation(candidate scheduling.AssignmentCandidate, result scheduling.ValidationResult) {
	if r == nil {
		return
	}
	r.validations.WithLabelValues(string(result.ConflictType), fmt.Sprintf("%t", candidate.IsEmergency)).Inc()
}

// ObserveOverride records an applied emergency override: the assignments it cancelled and
// the emergency assignments it left in place
func (r *Recorder) ObserveOverride(result scheduling.CancellationResult, flagged []scheduling.ExistingAssignment) {
	if r == nil {
		return
	}
	r.cancellations.Add(float64(len(result.CancelledAssignments)))
	r.flagged.Add(float64(len(flagged)))
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current counters in the Prometheus text format
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
