package scheduling

import "fmt"

// Rule is a single conflict check run by the Detector.
//
// Evaluate returns fired=true when the rule decides the outcome. That is usually a
// rejection, but an emergency override that accepts the candidate while displacing
// other work also fires. When fired is false the returned result is ignored and the
// next rule runs.
type Rule interface {
	// Name returns a human-readable identifier for this rule
	Name() string

	// Evaluate checks the candidate against the snapshot
	Evaluate(candidate AssignmentCandidate, snapshot Snapshot) (fired bool, result ValidationResult)
}

// Detector runs an ordered list of rules against a snapshot
type Detector struct {
	rules []Rule
}

// NewDetector creates a Detector that evaluates rules in the given order
func NewDetector(rules ...Rule) *Detector {
	return &Detector{rules: rules}
}

// RuleNames returns the rule names in evaluation order
func (d *Detector) RuleNames() []string {
	names := make([]string, len(d.rules))
	for i, rule := range d.rules {
		names[i] = rule.Name()
	}
	return names
}

// Validate decides whether candidate can be added to snapshot.
//
// Scheduling conflicts are reported through the result. An error is returned only for
// malformed input and wraps ErrInvalidCandidate or ErrInvalidSnapshot.
func (d *Detector) Validate(candidate AssignmentCandidate, snapshot Snapshot) (ValidationResult, error) {
	if err := validateCandidate(candidate); err != nil {
		return ValidationResult{}, err
	}
	if err := validateSnapshot(snapshot); err != nil {
		return ValidationResult{}, err
	}

	for _, rule := range d.rules {
		fired, result := rule.Evaluate(candidate, snapshot)
		if fired {
			return result, nil
		}
	}

	return Valid(), nil
}

// String summarises a result for logs and CLI output
func (r ValidationResult) String() string {
	if !r.IsValid {
		return fmt.Sprintf("%s: %s", r.ConflictType, r.ErrorMessage)
	}
	if len(r.AssignmentsToCancelForEmergency) == 0 && !r.HasEmergencyConflicts {
		return "valid"
	}
	return fmt.Sprintf("valid (cancels %d, emergency conflicts %d)",
		len(r.AssignmentsToCancelForEmergency), len(r.EmergencyConflicts))
}
