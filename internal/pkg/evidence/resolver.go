package evidence

import (
	"fmt"
	"log/slog"
	"time"
)

// Result is a resolved Fix plus, when coordinates were recovered by OCR and
// injected back, the rewritten image bytes to store in place of the upload.
type Result struct {
	Fix
	Rewritten []byte
}

// Resolver runs the ordered extractor chain over an uploaded photo.
type Resolver struct {
	extractors []Extractor
	now        func() time.Time
}

func NewResolver(extractors ...Extractor) *Resolver {
	return &Resolver{
		extractors: extractors,
		now:        time.Now,
	}
}

// Resolve tries each extractor in order and returns the first usable fix.
//
// A metadata fix is returned as-is; its timestamp may be nil and the caller
// decides whether that is acceptable. An overlay fix must carry a
// reconstructible timestamp whose date is today, otherwise the coordinates
// are discarded: evidence without a trustworthy capture time cannot pass a
// freshness check. On overlay success the coordinates are injected back into
// the image, best effort.
func (r *Resolver) Resolve(data []byte) (*Result, error) {
	for _, extractor := range r.extractors {
		fix, err := extractor.Extract(data)
		if err != nil {
			slog.Warn("evidence extractor failed", "extractor", extractor.Name(), "error", err)
			continue
		}
		if fix == nil {
			continue
		}

		if fix.Method == MethodMetadata {
			return &Result{Fix: *fix}, nil
		}

		return r.finishOverlay(data, fix)
	}

	return nil, ErrNoEvidence
}

func (r *Resolver) finishOverlay(data []byte, fix *Fix) (*Result, error) {
	if fix.RawDate == "" || fix.RawTime == "" {
		return nil, ErrTimeUnreadable
	}

	ts, ok := ReconstructTimestamp(fix.RawDate, fix.RawTime)
	if !ok {
		return nil, ErrTimeUnreadable
	}

	today := r.now()
	if ts.Year() != today.Year() || ts.YearDay() != today.YearDay() {
		return nil, fmt.Errorf("%w: photo date %s", ErrDateMismatch, ts.Format("2006-01-02"))
	}

	fix.Timestamp = &ts

	result := &Result{Fix: *fix}
	rewritten, err := InjectGPS(data, fix.Latitude, fix.Longitude)
	if err != nil {
		// Injection is a best-effort cache for future reads, never a
		// reason to fail resolution.
		slog.Warn("gps injection failed", "error", err)
		return result, nil
	}

	result.Fix.Method = MethodOverlayOCRInjected
	result.Rewritten = rewritten
	return result, nil
}
