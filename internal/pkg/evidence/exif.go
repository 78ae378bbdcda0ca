package evidence

import (
	"errors"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// MetadataExtractor reads the embedded geotag block and the original capture
// timestamp. Absence of either is normal and reported as not-applicable.
type MetadataExtractor struct{}

func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

func (e *MetadataExtractor) Name() string {
	return MethodMetadata
}

func (e *MetadataExtractor) Extract(data []byte) (*Fix, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return nil, nil
		}
		return nil, err
	}

	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, err
	}

	ti := exif.NewTagIndex()

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		return nil, nil
	}

	gpsIfd, err := index.RootIfd.ChildWithIfdPath(exifcommon.IfdGpsInfoStandardIfdIdentity)
	if err != nil {
		return nil, nil
	}

	gi, err := gpsIfd.GpsInfo()
	if err != nil {
		// A GPS IFD with zeroed or malformed rationals is treated as absent.
		return nil, nil
	}

	lat := gi.Latitude.Decimal()
	lon := gi.Longitude.Decimal()
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 || (lat == 0 && lon == 0) {
		return nil, nil
	}

	fix := &Fix{
		Latitude:  lat,
		Longitude: lon,
		Method:    MethodMetadata,
	}

	if ts := captureTimestamp(rawExif); ts != nil {
		fix.Timestamp = ts
	}

	return fix, nil
}

// captureTimestamp scans the flat tag list for the original capture time.
// The standard tag value format is "2006:01:02 15:04:05" in local time.
func captureTimestamp(rawExif []byte) *time.Time {
	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	for _, name := range []string{"DateTimeOriginal", "DateTimeDigitized", "DateTime"} {
		for _, tag := range tags {
			if tag.TagName != name {
				continue
			}
			value, ok := tag.Value.(string)
			if !ok {
				continue
			}
			ts, err := time.ParseInLocation("2006:01:02 15:04:05", value, time.Local)
			if err != nil {
				continue
			}
			return &ts
		}
	}

	return nil
}
