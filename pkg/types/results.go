package types

import (
	"github.com/arthur-debert/slinky/pkg/errors"
)

// ResultStatus is the outcome of applying one operation to one link.
type ResultStatus string

const (
	// StatusUnchanged means the computed value equals the current one, or
	// the operation had nothing to do. No mutation happened.
	StatusUnchanged ResultStatus = "unchanged"

	// StatusTransformed means the link was rewritten (or would be, in dry-run).
	StatusTransformed ResultStatus = "transformed"

	// StatusFailed means a precondition or mutation failed for this link only.
	StatusFailed ResultStatus = "failed"
)

// Result is the per-entry report produced by every operation.
type Result struct {
	Operation string       `json:"operation"`
	Origin    string       `json:"origin"`
	Status    ResultStatus `json:"status"`
	OldTarget string       `json:"old"`
	NewTarget string       `json:"new,omitempty"`
	Reason    string       `json:"reason,omitempty"`
	DryRun    bool         `json:"dryRun,omitempty"`
	// Command is the command line run for the link, if any.
	Command string `json:"command,omitempty"`
	Err     error  `json:"-"`
}

// Unchanged builds an unchanged result with a short note.
func Unchanged(op string, entry *LinkEntry, note string) Result {
	return Result{
		Operation: op,
		Origin:    entry.Origin,
		Status:    StatusUnchanged,
		OldTarget: entry.RawTarget,
		Reason:    note,
	}
}

// Transformed builds a transformed result.
func Transformed(op string, entry *LinkEntry, newTarget string, dryRun bool) Result {
	return Result{
		Operation: op,
		Origin:    entry.Origin,
		Status:    StatusTransformed,
		OldTarget: entry.RawTarget,
		NewTarget: newTarget,
		DryRun:    dryRun,
	}
}

// Failed builds a failed result. The reason is the error's message chain.
func Failed(op string, entry *LinkEntry, err error) Result {
	return Result{
		Operation: op,
		Origin:    entry.Origin,
		Status:    StatusFailed,
		OldTarget: entry.RawTarget,
		Reason:    errors.Reason(err),
		Err:       err,
	}
}

// Code returns the error code of a failed result, or ErrUnknown.
func (r Result) Code() errors.ErrorCode {
	return errors.GetErrorCode(r.Err)
}

// Summary counts results by status.
type Summary struct {
	Unchanged   int `json:"unchanged"`
	Transformed int `json:"transformed"`
	Failed      int `json:"failed"`
}

// Add records one result.
func (s *Summary) Add(r Result) {
	switch r.Status {
	case StatusUnchanged:
		s.Unchanged++
	case StatusTransformed:
		s.Transformed++
	case StatusFailed:
		s.Failed++
	}
}

// Total returns the number of recorded results.
func (s Summary) Total() int {
	return s.Unchanged + s.Transformed + s.Failed
}
