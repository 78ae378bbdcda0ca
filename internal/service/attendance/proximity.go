package attendance

import (
	"github.com/attendlab/attendance-backend-go/internal/domain/master/site"
	"github.com/attendlab/attendance-backend-go/internal/pkg/utils"
)

// DefaultRadiusKm is the geofence radius applied to every site.
const DefaultRadiusKm = 2.0

// ProximityResult reports the geofence decision for a submission point.
// When WithinRange is false, Site and DistanceKm describe the true nearest
// site so the rejection message can say how far off the employee was.
type ProximityResult struct {
	Site        site.Site
	DistanceKm  float64
	WithinRange bool
}

// ResolveProximity checks the point against every candidate site in order.
// The first site within radiusKm wins, even if a later site is closer; when
// none qualifies the nearest site overall is returned with WithinRange=false.
// Callers must pass a non-empty site list.
func ResolveProximity(lat, lon float64, sites []site.Site, radiusKm float64) ProximityResult {
	nearest := ProximityResult{Site: sites[0], DistanceKm: utils.CalculateHaversineDistance(lat, lon, sites[0].Latitude, sites[0].Longitude)}

	for _, candidate := range sites {
		distance := utils.CalculateHaversineDistance(lat, lon, candidate.Latitude, candidate.Longitude)
		if distance <= radiusKm {
			return ProximityResult{Site: candidate, DistanceKm: distance, WithinRange: true}
		}
		if distance < nearest.DistanceKm {
			nearest.Site = candidate
			nearest.DistanceKm = distance
		}
	}

	return nearest
}
