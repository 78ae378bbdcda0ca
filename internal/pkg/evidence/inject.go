package evidence

import (
	"bytes"
	"fmt"
	"math"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// InjectGPS writes the recovered coordinates into the JPEG's metadata block
// and returns the rewritten bytes, so a repeat read of the stored image is a
// metadata-only hit. Non-JPEG input is rejected by the parser.
func InjectGPS(data []byte, lat, lon float64) ([]byte, error) {
	jmp := jpegstructure.NewJpegMediaParser()

	intfc, err := jmp.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse jpeg: %w", err)
	}

	sl := intfc.(*jpegstructure.SegmentList)

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		// No existing metadata block; start a fresh one.
		im, mapErr := exifcommon.NewIfdMappingWithStandard()
		if mapErr != nil {
			return nil, mapErr
		}
		ti := exif.NewTagIndex()
		rootIb = exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)
	}

	gpsIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD/GPSInfo")
	if err != nil {
		return nil, fmt.Errorf("gps ifd builder: %w", err)
	}

	latRef, lonRef := "N", "E"
	if lat < 0 {
		latRef = "S"
	}
	if lon < 0 {
		lonRef = "W"
	}

	if err := gpsIb.SetStandardWithName("GPSLatitudeRef", latRef); err != nil {
		return nil, err
	}
	if err := gpsIb.SetStandardWithName("GPSLatitude", degToDMSRational(lat)); err != nil {
		return nil, err
	}
	if err := gpsIb.SetStandardWithName("GPSLongitudeRef", lonRef); err != nil {
		return nil, err
	}
	if err := gpsIb.SetStandardWithName("GPSLongitude", degToDMSRational(lon)); err != nil {
		return nil, err
	}

	if err := sl.SetExif(rootIb); err != nil {
		return nil, fmt.Errorf("set exif: %w", err)
	}

	var buf bytes.Buffer
	if err := sl.Write(&buf); err != nil {
		return nil, fmt.Errorf("write jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// degToDMSRational converts decimal degrees to the {d/1, m/1, s*100/100}
// rational triple the geotag block stores.
func degToDMSRational(deg float64) []exifcommon.Rational {
	abs := math.Abs(deg)
	d := math.Floor(abs)
	m := math.Floor((abs - d) * 60)
	s := math.Round((abs - d - m/60) * 3600 * 100)

	return []exifcommon.Rational{
		{Numerator: uint32(d), Denominator: 1},
		{Numerator: uint32(m), Denominator: 1},
		{Numerator: uint32(s), Denominator: 100},
	}
}
