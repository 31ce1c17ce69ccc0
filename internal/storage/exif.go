package storage

import (
	"bytes"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"go.uber.org/zap"
)

// ExifSummary is the handful of EXIF facts worth logging next to a verdict.
type ExifSummary struct {
	Camera  string
	TakenAt time.Time
}

func inspectExif(data []byte) *ExifSummary {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	s := &ExifSummary{}
	if tag, err := x.Get(exif.Model); err == nil {
		if v, err := tag.StringVal(); err == nil {
			s.Camera = strings.TrimSpace(v)
		}
	}
	if t, err := x.DateTime(); err == nil {
		s.TakenAt = t
	}
	return s
}

// Fields renders the summary as log fields. A nil summary yields none.
func (s *ExifSummary) Fields() []zap.Field {
	if s == nil {
		return nil
	}
	var fields []zap.Field
	if s.Camera != "" {
		fields = append(fields, zap.String("camera", s.Camera))
	}
	if !s.TakenAt.IsZero() {
		fields = append(fields, zap.Time("taken_at", s.TakenAt))
	}
	return fields
}
