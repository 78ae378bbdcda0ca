package evidence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ocrConfusion maps characters that monospace overlay fonts commonly
// misrecognize as letters back to digits. Lowercase label words such as
// "Lat" and "Longitude" are unaffected.
var ocrConfusion = strings.NewReplacer(
	"O", "0",
	"I", "1",
	"l", "1",
	"S", "5",
	"B", "8",
	"G", "6",
	"Z", "2",
	"T", "7",
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeOCRText applies the character-confusion cleanup and collapses
// whitespace before pattern matching.
func NormalizeOCRText(text string) string {
	text = ocrConfusion.Replace(strings.TrimSpace(text))
	return whitespaceRegex.ReplaceAllString(text, " ")
}

// Coordinate patterns, tried in order. First validated match wins.
var coordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(-?\d{1,3}\.\d+)\s*[°, ]+\s*(-?\d{1,3}\.\d+)`),
	regexp.MustCompile(`Lat\s*[:=]?\s*(-?\d{1,3}\.\d+)\s*°?\s*[,;]?\s*Long\s*[:=]?\s*(-?\d{1,3}\.\d+)\s*°?`),
	regexp.MustCompile(`Latitude\s*[:=]?\s*(-?\d{1,3}\.\d+)\s*°?\s*[,;]?\s*Longitude\s*[:=]?\s*(-?\d{1,3}\.\d+)\s*°?`),
	regexp.MustCompile(`(\d{1,3})[°: ]+(\d{1,2})['′: ]+(\d{1,2}(?:\.\d+)?)["″: ]+([NSns])?[, ]+(\d{1,3})[°: ]+(\d{1,2})['′: ]+(\d{1,2}(?:\.\d+)?)["″: ]+([EWew])?`),
}

var (
	numericDateRegex = regexp.MustCompile(`(\d{1,2})[\-/](\d{1,2})[\-/](\d{4})`)
	isoDateRegex     = regexp.MustCompile(`(\d{4})[\-/](\d{1,2})[\-/](\d{1,2})`)
	clockRegex       = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(AM|PM|am|pm)?`)
	addressRegex     = regexp.MustCompile(`([A-Za-z0-9,\- ]+(?:Jalan|Jl|Street|Road|Raya|Kecamatan|Kelurahan)[A-Za-z0-9,\- ]*|\d{5,6})`)
)

// ParseCoordinates scans normalized overlay text for a coordinate pair.
// Parsed pairs outside valid ranges are discarded and the next pattern is
// tried.
func ParseCoordinates(text string) (lat, lon float64, ok bool) {
	for _, pattern := range coordPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		var plat, plon float64
		var err error

		switch len(m) - 1 {
		case 2:
			plat, err = strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			plon, err = strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
		case 8:
			plat = dmsToDecimal(m[1], m[2], m[3], m[4], "S")
			plon = dmsToDecimal(m[5], m[6], m[7], m[8], "W")
		default:
			continue
		}

		if plat >= -90 && plat <= 90 && plon >= -180 && plon <= 180 {
			return plat, plon, true
		}
	}

	return 0, 0, false
}

// dmsToDecimal converts degree/minute/second components to decimal degrees,
// negating when the hemisphere letter matches negHemi.
func dmsToDecimal(deg, min, sec, hemi, negHemi string) float64 {
	d, _ := strconv.ParseFloat(deg, 64)
	m, _ := strconv.ParseFloat(min, 64)
	s, _ := strconv.ParseFloat(sec, 64)

	value := d + m/60 + s/3600
	if strings.EqualFold(hemi, negHemi) {
		value = -value
	}
	return value
}

// DisambiguateDate resolves an ambiguous numeric day/month pair. A first
// component above 12 is unambiguously a day; a second component above 12
// forces a swap; otherwise day-first is assumed. When both components are 12
// or less the ambiguity is irreducible and day-first is a locale assumption.
func DisambiguateDate(first, second int) (day, month int) {
	switch {
	case first > 12 && second >= 1 && second <= 12:
		return first, second
	case second > 12 && first >= 1 && first <= 12:
		return second, first
	default:
		return first, second
	}
}

// FindDate scans text for a date and returns it normalized to dd/mm/yyyy.
func FindDate(text string) (string, bool) {
	if m := numericDateRegex.FindStringSubmatch(text); m != nil {
		first, _ := strconv.Atoi(m[1])
		second, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		day, month := DisambiguateDate(first, second)
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return formatDate(day, month, year), true
		}
	}

	if m := isoDateRegex.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return formatDate(day, month, year), true
		}
	}

	return "", false
}

func formatDate(day, month, year int) string {
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year)
}

// FindClock scans text for a wall-clock time, returning it normalized to
// "h:mm:ss" with an optional trailing meridiem.
func FindClock(text string) (string, bool) {
	m := clockRegex.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	sec := m[3]
	if sec == "" {
		sec = "00"
	}

	clock := m[1] + ":" + m[2] + ":" + sec
	if m[4] != "" {
		clock += " " + strings.ToUpper(m[4])
	}
	return clock, true
}

// FindAddress runs the coarse locality scan. Best effort only; never used
// for gating decisions.
func FindAddress(text string) (string, bool) {
	m := addressRegex.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m), true
}

// Datetime layouts tried when reconstructing an overlay timestamp, with and
// without meridiem.
var overlayDatetimeLayouts = []string{
	"2/1/2006 3:04:05 PM",
	"2/1/2006 15:04:05",
	"2/1/2006 3:04 PM",
	"2/1/2006 15:04",
}

// ReconstructTimestamp combines a normalized dd/mm/yyyy date and a clock
// string into a local-time timestamp.
func ReconstructTimestamp(dateStr, clockStr string) (time.Time, bool) {
	combined := dateStr + " " + clockStr
	for _, layout := range overlayDatetimeLayouts {
		if ts, err := time.ParseInLocation(layout, combined, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
