package processor

import (
	"errors"

	"github.com/qq-zhong/artChart-Triggers/internal/classifier"
	"github.com/qq-zhong/artChart-Triggers/internal/records"
	"github.com/qq-zhong/artChart-Triggers/internal/storage"
)

var (
	// ErrMissingInput marks a record created without an image locator.
	ErrMissingInput = errors.New("no imageUrl on record")
	// ErrInternal marks a recovered panic.
	ErrInternal = errors.New("internal error")
)

type Status int

const (
	// StatusUpdated: verdict was affirmative and detectArt was set.
	StatusUpdated Status = iota
	// StatusRejected: verdict was anything but affirmative; nothing written.
	StatusRejected
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUpdated:
		return "updated"
	case StatusRejected:
		return "rejected"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome is the result of processing one record. It never leaves the
// package boundary as an error.
type Outcome struct {
	RecordID string
	Status   Status
	Verdict  string
	Err      error
}

// Category names the error class of err for logging.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return "missing_input"
	case errors.Is(err, storage.ErrFetch):
		return "fetch"
	case errors.Is(err, classifier.ErrInference):
		return "inference"
	case errors.Is(err, records.ErrPersistence):
		return "persistence"
	default:
		return "internal"
	}
}
