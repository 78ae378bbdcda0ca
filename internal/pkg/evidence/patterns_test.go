package evidence

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOCRText(t *testing.T) {
	got := NormalizeOCRText("  Lat: -6.2O88   Long:   1O6.8456\n")
	assert.Equal(t, "Lat: -6.2088 Long: 106.8456", got)
}

func TestParseCoordinates(t *testing.T) {
	cases := []struct {
		name string
		text string
		lat  float64
		lon  float64
	}{
		{"bare decimal pair", "GPS -6.208800, 106.845600 recorded", -6.2088, 106.8456},
		{"lat long labels", "Lat: -6.2088 Long: 106.8456", -6.2088, 106.8456},
		{"latitude longitude labels", "Latitude: 18.5204 Longitude: 73.8567", 18.5204, 73.8567},
		{"dms pair", `18°31'13.4"N, 73°51'42.1"E`, 18.520389, 73.861694},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lat, lon, ok := ParseCoordinates(c.text)
			require.True(t, ok)
			assert.InDelta(t, c.lat, lat, 1e-4)
			assert.InDelta(t, c.lon, lon, 1e-4)
		})
	}

	t.Run("southern western hemispheres", func(t *testing.T) {
		lat, lon, ok := ParseCoordinates(`6°12'31.7"S, 77°51'42.1"W`)
		require.True(t, ok)
		assert.Less(t, lat, 0.0)
		assert.Less(t, lon, 0.0)
	})

	t.Run("out of range pair rejected", func(t *testing.T) {
		_, _, ok := ParseCoordinates("999.123456, 200.654321")
		assert.False(t, ok)
	})

	t.Run("no coordinates", func(t *testing.T) {
		_, _, ok := ParseCoordinates("just some overlay text")
		assert.False(t, ok)
	})
}

func TestDMSRoundTrip(t *testing.T) {
	// Converting decimal degrees to DMS text and parsing it back must
	// reconstruct the original pair within 1e-4 degrees.
	points := []struct{ lat, lon float64 }{
		{18.5204, 73.8567},
		{-6.2088, 106.8456},
		{0.0001, 0.0001},
		{89.9999, 179.9999},
	}

	toDMS := func(v float64) (d, m int, s float64) {
		abs := math.Abs(v)
		d = int(abs)
		m = int((abs - float64(d)) * 60)
		s = (abs - float64(d) - float64(m)/60) * 3600
		return
	}

	for _, p := range points {
		latD, latM, latS := toDMS(p.lat)
		lonD, lonM, lonS := toDMS(p.lon)

		latHemi, lonHemi := "N", "E"
		if p.lat < 0 {
			latHemi = "S"
		}
		if p.lon < 0 {
			lonHemi = "W"
		}

		text := fmt.Sprintf(`%d°%d'%.4f"%s, %d°%d'%.4f"%s`,
			latD, latM, latS, latHemi, lonD, lonM, lonS, lonHemi)

		lat, lon, ok := ParseCoordinates(text)
		require.True(t, ok, "input %q", text)
		assert.InDelta(t, p.lat, lat, 1e-4)
		assert.InDelta(t, p.lon, lon, 1e-4)
	}
}

func TestDisambiguateDate(t *testing.T) {
	cases := []struct {
		first, second int
		day, month    int
	}{
		{15, 3, 15, 3}, // first >12 forces day-first
		{3, 15, 15, 3}, // second >12 forces swap
		{3, 4, 3, 4},   // both ambiguous, default day-first
	}

	for _, c := range cases {
		day, month := DisambiguateDate(c.first, c.second)
		assert.Equal(t, c.day, day, "first=%d second=%d", c.first, c.second)
		assert.Equal(t, c.month, month, "first=%d second=%d", c.first, c.second)
	}
}

func TestFindDate(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"captured 15/03/2025 at noon", "15/03/2025"},
		{"captured 03/15/2025 at noon", "15/03/2025"},
		{"captured 03/04/2025 at noon", "03/04/2025"},
		{"captured 2025-09-22 at noon", "22/09/2025"},
	}

	for _, c := range cases {
		got, ok := FindDate(c.text)
		require.True(t, ok, "input %q", c.text)
		assert.Equal(t, c.want, got)
	}

	_, ok := FindDate("no date in here")
	assert.False(t, ok)
}

func TestFindClock(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"time 08:05:23 recorded", "08:05:23"},
		{"time 8:05 recorded", "8:05:00"},
		{"time 8:05 pm recorded", "8:05:00 PM"},
		{"time 11:59:59 AM recorded", "11:59:59 AM"},
	}

	for _, c := range cases {
		got, ok := FindClock(c.text)
		require.True(t, ok, "input %q", c.text)
		assert.Equal(t, c.want, got)
	}

	_, ok := FindClock("no clock here")
	assert.False(t, ok)
}

func TestReconstructTimestamp(t *testing.T) {
	t.Run("24 hour with seconds", func(t *testing.T) {
		ts, ok := ReconstructTimestamp("15/03/2025", "18:30:05")
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 15, 18, 30, 5, 0, time.Local), ts)
	})

	t.Run("12 hour meridiem", func(t *testing.T) {
		ts, ok := ReconstructTimestamp("15/03/2025", "6:30:05 PM")
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 15, 18, 30, 5, 0, time.Local), ts)
	})

	t.Run("unparseable", func(t *testing.T) {
		_, ok := ReconstructTimestamp("15/03/2025", "25:99")
		assert.False(t, ok)
	})
}
