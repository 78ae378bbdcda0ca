package attendance

import (
	"testing"

	"github.com/attendlab/attendance-backend-go/internal/domain/master/site"
	"github.com/stretchr/testify/assert"
)

func TestResolveProximity_ExactLocation(t *testing.T) {
	sites := []site.Site{
		{ID: "site-1", Name: "Head Office", Latitude: siteLat, Longitude: siteLon},
	}

	result := ResolveProximity(siteLat, siteLon, sites, DefaultRadiusKm)

	assert.True(t, result.WithinRange)
	assert.Equal(t, "site-1", result.Site.ID)
	assert.InDelta(t, 0, result.DistanceKm, 1e-9)
}

func TestResolveProximity_JustOutsideRadius(t *testing.T) {
	sites := []site.Site{
		{ID: "site-1", Name: "Head Office", Latitude: siteLat, Longitude: siteLon},
	}

	// Roughly 2.01 km due north of the site: 1 degree of latitude spans
	// about 111.195 km on the reference sphere.
	lat := siteLat + 2.01/111.195

	result := ResolveProximity(lat, siteLon, sites, DefaultRadiusKm)

	assert.False(t, result.WithinRange)
	assert.Equal(t, "site-1", result.Site.ID)
	assert.InDelta(t, 2.01, result.DistanceKm, 0.01)
}

func TestResolveProximity_FirstWithinRadiusWins(t *testing.T) {
	// Both sites are within range but the second is closer. The first one in
	// iteration order still wins.
	sites := []site.Site{
		{ID: "site-far", Latitude: siteLat + 1.5/111.195, Longitude: siteLon},
		{ID: "site-near", Latitude: siteLat + 0.1/111.195, Longitude: siteLon},
	}

	result := ResolveProximity(siteLat, siteLon, sites, DefaultRadiusKm)

	assert.True(t, result.WithinRange)
	assert.Equal(t, "site-far", result.Site.ID)
}

func TestResolveProximity_NearestFallback(t *testing.T) {
	sites := []site.Site{
		{ID: "site-a", Latitude: siteLat + 10.0/111.195, Longitude: siteLon},
		{ID: "site-b", Latitude: siteLat + 5.0/111.195, Longitude: siteLon},
		{ID: "site-c", Latitude: siteLat + 7.0/111.195, Longitude: siteLon},
	}

	result := ResolveProximity(siteLat, siteLon, sites, DefaultRadiusKm)

	assert.False(t, result.WithinRange)
	assert.Equal(t, "site-b", result.Site.ID)
	assert.InDelta(t, 5.0, result.DistanceKm, 0.05)
}
