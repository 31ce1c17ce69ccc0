package processor

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/qq-zhong/artChart-Triggers/internal/classifier"
	"github.com/qq-zhong/artChart-Triggers/internal/records"
	"github.com/qq-zhong/artChart-Triggers/internal/storage"
)

// --- Interfaces ---

type Fetcher interface {
	Fetch(ctx context.Context, locator string) (*storage.Blob, error)
}

type Classifier interface {
	Classify(ctx context.Context, encodedImage string) (string, error)
}

type Updater interface {
	SetDetectArt(ctx context.Context, id string, value bool) error
}

// --- Handler ---

type Handler struct {
	fetcher    Fetcher
	classifier Classifier
	updater    Updater
	log        *zap.Logger
}

func New(fetcher Fetcher, classifier Classifier, updater Updater, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		fetcher:    fetcher,
		classifier: classifier,
		updater:    updater,
		log:        log,
	}
}

// Invoke handles a batch from the artwork table's stream. Only INSERT
// records are processed. It always returns nil so the stream never retries.
func (h *Handler) Invoke(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if record.EventName != string(events.DynamoDBOperationTypeInsert) {
			h.log.Debug("Ignoring stream record",
				zap.String("event_id", record.EventID),
				zap.String("event_name", record.EventName))
			continue
		}

		rec, err := records.FromStreamImage(record.Change.Keys, record.Change.NewImage)
		if err != nil {
			h.log.Error("Failed to decode stream record",
				zap.String("event_id", record.EventID),
				zap.Error(err))
			continue
		}

		h.report(h.Process(ctx, rec))
	}
	return nil
}

// Process runs one record through fetch, classify and update.
func (h *Handler) Process(ctx context.Context, rec records.Record) (out Outcome) {
	out.RecordID = rec.ID

	defer func() {
		if r := recover(); r != nil {
			out.Status = StatusFailed
			out.Err = fmt.Errorf("%w: panic: %v", ErrInternal, r)
		}
	}()

	if rec.ImageURL == "" {
		out.Status = StatusSkipped
		out.Err = ErrMissingInput
		return out
	}

	h.log.Info("Processing artwork",
		zap.String("artwork_id", rec.ID),
		zap.String("image_url", rec.ImageURL))

	blob, err := h.fetcher.Fetch(ctx, rec.ImageURL)
	if err != nil {
		return failed(out, err)
	}

	answer, err := h.classifier.Classify(ctx, blob.Encoded)
	if err != nil {
		return failed(out, err)
	}
	out.Verdict = answer

	verdict := classifier.ParseVerdict(answer)
	h.log.Info("Classification received",
		append([]zap.Field{
			zap.String("artwork_id", rec.ID),
			zap.String("path", blob.Path),
			zap.String("response", answer),
			zap.Stringer("verdict", verdict),
		}, blob.Exif.Fields()...)...)

	if verdict != classifier.Affirmative {
		out.Status = StatusRejected
		return out
	}

	if err := h.updater.SetDetectArt(ctx, rec.ID, true); err != nil {
		return failed(out, err)
	}

	out.Status = StatusUpdated
	return out
}

func failed(out Outcome, err error) Outcome {
	out.Status = StatusFailed
	out.Err = err
	return out
}

func (h *Handler) report(out Outcome) {
	fields := []zap.Field{
		zap.String("artwork_id", out.RecordID),
		zap.Stringer("status", out.Status),
	}

	switch out.Status {
	case StatusUpdated:
		h.log.Info("Artwork approved", fields...)
	case StatusRejected:
		h.log.Info("Artwork not approved", append(fields, zap.String("response", out.Verdict))...)
	case StatusSkipped:
		h.log.Warn("No imageUrl found in the newly added artwork entry", fields...)
	default:
		h.log.Error("Error processing artwork",
			append(fields, zap.String("category", Category(out.Err)), zap.Error(out.Err))...)
	}
}
