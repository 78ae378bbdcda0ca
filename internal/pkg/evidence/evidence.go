package evidence

import (
	"errors"
	"time"
)

// Extraction methods reported on a resolved Fix.
const (
	MethodMetadata           = "metadata"
	MethodOverlayOCR         = "overlay_ocr"
	MethodOverlayOCRInjected = "overlay_ocr_injected"
)

// Resolution failure reasons. Each maps to a distinct user-facing message.
var (
	ErrNoEvidence     = errors.New("no location evidence found in image")
	ErrTimeUnreadable = errors.New("timestamp could not be reconstructed from image")
	ErrDateMismatch   = errors.New("image evidence is not from today")
)

// Fix is geolocation and timestamp evidence recovered from one photo.
// Timestamp may be nil on the metadata path when the capture time tag is
// absent. RawDate and RawTime carry unparsed overlay text for the resolver
// to reconstruct and validate.
type Fix struct {
	Latitude  float64
	Longitude float64
	Timestamp *time.Time
	Address   string
	Method    string

	RawDate string
	RawTime string
}

// Extractor is one strategy in the resolution chain. Returning (nil, nil)
// means the strategy does not apply to this image; an error is a hard
// failure of the strategy itself.
type Extractor interface {
	Name() string
	Extract(data []byte) (*Fix, error)
}
