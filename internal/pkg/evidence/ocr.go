package evidence

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/jpeg"

	"github.com/otiai10/gosseract/v2"
)

// OverlayExtractor recovers location evidence from GPS-camera text overlays
// burned into the image pixels. It runs four OCR passes over raster variants
// and pattern-matches coordinates, date, time and address out of the text.
type OverlayExtractor struct{}

func NewOverlayExtractor() *OverlayExtractor {
	return &OverlayExtractor{}
}

func (e *OverlayExtractor) Name() string {
	return MethodOverlayOCR
}

func (e *OverlayExtractor) Extract(data []byte) (*Fix, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	variants, err := rasterVariants(img)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	// Overlay text is a single block, usually bottom-anchored.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return nil, fmt.Errorf("set page seg mode: %w", err)
	}

	var fix *Fix
	var rawDate, rawTime, address string

	for _, variant := range variants {
		if err := client.SetImageFromBytes(variant); err != nil {
			continue
		}

		text, err := client.Text()
		if err != nil {
			continue
		}
		text = NormalizeOCRText(text)

		// The first variant with a validated pair wins; date, time and
		// address keep being searched across all variants independently.
		if fix == nil {
			if lat, lon, ok := ParseCoordinates(text); ok {
				fix = &Fix{Latitude: lat, Longitude: lon, Method: MethodOverlayOCR}
			}
		}

		if rawDate == "" {
			if date, ok := FindDate(text); ok {
				rawDate = date
			}
		}
		if rawTime == "" {
			if clock, ok := FindClock(text); ok {
				rawTime = clock
			}
		}
		if address == "" {
			if a, ok := FindAddress(text); ok {
				address = a
			}
		}
	}

	if fix == nil {
		return nil, nil
	}

	fix.RawDate = rawDate
	fix.RawTime = rawTime
	fix.Address = address
	return fix, nil
}

// rasterVariants produces the four OCR inputs in fixed order: full frame,
// lower-half crop, then Otsu-binarized versions of both, each PNG-encoded.
func rasterVariants(img image.Image) ([][]byte, error) {
	lower := lowerHalf(img)

	images := []image.Image{
		img,
		lower,
		otsuThreshold(toGrayscale(img)),
		otsuThreshold(toGrayscale(lower)),
	}

	variants := make([][]byte, 0, len(images))
	for _, im := range images {
		var buf bytes.Buffer
		if err := png.Encode(&buf, im); err != nil {
			return nil, fmt.Errorf("encode variant: %w", err)
		}
		variants = append(variants, buf.Bytes())
	}
	return variants, nil
}

// lowerHalf crops the bottom half of the frame, where overlay apps
// conventionally anchor their text.
func lowerHalf(img image.Image) image.Image {
	b := img.Bounds()
	cropTop := b.Min.Y + b.Dy()/2

	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Max.Y-cropTop))
	for y := cropTop; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x-b.Min.X, y-cropTop, img.At(x, y))
		}
	}
	return out
}

// toGrayscale converts using BT.601 luma weights.
func toGrayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
			gray.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: uint8(luma)})
		}
	}
	return gray
}

// otsuThreshold binarizes a grayscale image at the global threshold that
// maximizes between-class variance.
func otsuThreshold(gray *image.Gray) *image.Gray {
	var histogram [256]int
	for _, px := range gray.Pix {
		histogram[px]++
	}

	total := len(gray.Pix)
	var sum float64
	for i, count := range histogram {
		sum += float64(i) * float64(count)
	}

	var sumB, wB float64
	var maxVariance float64
	threshold := 0

	for i, count := range histogram {
		wB += float64(count)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}

		sumB += float64(i) * float64(count)
		mB := sumB / wB
		mF := (sum - sumB) / wF

		variance := wB * wF * (mB - mF) * (mB - mF)
		if variance > maxVariance {
			maxVariance = variance
			threshold = i
		}
	}

	out := image.NewGray(gray.Bounds())
	for i, px := range gray.Pix {
		if int(px) > threshold {
			out.Pix[i] = 255
		} else {
			out.Pix[i] = 0
		}
	}
	return out
}
