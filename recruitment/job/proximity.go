package job

import (
	"math"
	"strconv"
	"strings"

	"github.com/Abraxas-365/hirematch/internal/geo"
)

// ProximityQuery is a parsed radius filter. When Enabled is false every
// located posting passes.
type ProximityQuery struct {
	Center      geo.Point
	RadiusMiles float64
	Enabled     bool
}

// ParseProximityQuery parses raw query values. Any missing or malformed value
// disables the filter instead of failing the request.
func ParseProximityQuery(lat, lon, radius string) ProximityQuery {
	la, okLat := parseFloat(lat)
	lo, okLon := parseFloat(lon)
	r, okRadius := parseFloat(radius)

	if !okLat || !okLon || !okRadius {
		return ProximityQuery{}
	}
	if !geo.ValidLatitude(la) || !geo.ValidLongitude(lo) {
		return ProximityQuery{}
	}
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return ProximityQuery{}
	}

	return ProximityQuery{
		Center:      geo.Point{Lat: la, Lon: lo},
		RadiusMiles: r,
		Enabled:     true,
	}
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NearbyJob is a posting that passed the proximity filter
type NearbyJob struct {
	Job           Job
	DistanceMiles *float64
}

// FilterByProximity keeps active postings with valid coordinates and, when the
// query is enabled, a haversine distance within the inclusive radius.
// Input order is preserved.
func FilterByProximity(jobs []Job, q ProximityQuery) []NearbyJob {
	out := make([]NearbyJob, 0, len(jobs))
	for _, j := range jobs {
		if !j.IsActive {
			continue
		}
		p, ok := j.Point()
		if !ok {
			continue
		}

		if !q.Enabled {
			out = append(out, NearbyJob{Job: j})
			continue
		}

		d := geo.DistanceMiles(q.Center, p)
		if d <= q.RadiusMiles {
			out = append(out, NearbyJob{Job: j, DistanceMiles: &d})
		}
	}
	return out
}

// MapMarker is the map pin rendered for a posting
type MapMarker struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	URL           string   `json:"url"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

// Markers converts filtered postings to map markers
func Markers(nearby []NearbyJob) []MapMarker {
	out := make([]MapMarker, 0, len(nearby))
	for _, n := range nearby {
		out = append(out, MapMarker{
			ID:            n.Job.ID.String(),
			Title:         string(n.Job.Title),
			Company:       string(n.Job.CompanyName),
			Latitude:      *n.Job.Latitude,
			Longitude:     *n.Job.Longitude,
			URL:           n.Job.DetailURL(),
			DistanceMiles: n.DistanceMiles,
		})
	}
	return out
}
