package scheduling

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

var (
	// ErrInvalidCandidate indicates a malformed candidate. It is a caller bug, not a
	// scheduling conflict.
	ErrInvalidCandidate = errors.New("invalid assignment candidate")

	// ErrInvalidSnapshot indicates a malformed snapshot entry
	ErrInvalidSnapshot = errors.New("invalid assignment snapshot")
)

// validateCandidate checks the candidate preconditions, collecting every violation
func validateCandidate(c AssignmentCandidate) error {
	var err error

	if strings.TrimSpace(c.WorkerEmail) == "" {
		err = multierr.Append(err, fmt.Errorf("%w: worker email is required", ErrInvalidCandidate))
	}
	if strings.TrimSpace(c.PropertyCode) == "" {
		err = multierr.Append(err, fmt.Errorf("%w: property code is required", ErrInvalidCandidate))
	}
	if strings.TrimSpace(c.UnitNumber) == "" {
		err = multierr.Append(err, fmt.Errorf("%w: unit number is required", ErrInvalidCandidate))
	}
	if c.ScheduledDate.IsZero() {
		err = multierr.Append(err, fmt.Errorf("%w: scheduled date is required", ErrInvalidCandidate))
	}

	return err
}

// validateSnapshot checks every snapshot entry, collecting every violation
func validateSnapshot(snapshot Snapshot) error {
	var err error

	for i, a := range snapshot {
		if !a.Status.IsKnown() {
			err = multierr.Append(err, fmt.Errorf("%w: entry %d (request %q) has unknown status %q", ErrInvalidSnapshot, i, a.RequestID, a.Status))
		}
		if !a.Status.IsActive() {
			// Inactive entries never take part in checks, so their other fields don't matter
			continue
		}
		if strings.TrimSpace(a.WorkerEmail) == "" {
			err = multierr.Append(err, fmt.Errorf("%w: entry %d (request %q) has no worker email", ErrInvalidSnapshot, i, a.RequestID))
		}
		if a.ScheduledDate.IsZero() {
			err = multierr.Append(err, fmt.Errorf("%w: entry %d (request %q) has no scheduled date", ErrInvalidSnapshot, i, a.RequestID))
		}
	}

	return err
}
