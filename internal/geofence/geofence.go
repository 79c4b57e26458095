package geofence

import (
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	"ridebook/internal/models"
)

// Containment checks for service areas. Polygon areas carry WKB geometry
// (GeoJSON coordinates are [lng, lat]); circle areas carry center + radius.

// Haversine distance in meters
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

// Contains reports whether the point lies inside the area's geofence.
func Contains(area models.ServiceArea, lat, lng float64) bool {
	switch area.Kind {
	case models.AreaCircle:
		if area.RadiusMeters <= 0 {
			return false
		}
		return Haversine(lat, lng, area.CenterLat, area.CenterLng) <= area.RadiusMeters
	case models.AreaPolygon:
		if len(area.Geometry) == 0 {
			return false
		}
		g, err := wkb.Unmarshal(area.Geometry)
		if err != nil {
			return false
		}
		return geometryContains(g, lng, lat)
	}
	return false
}

func geometryContains(g geom.T, x, y float64) bool {
	switch p := g.(type) {
	case *geom.Polygon:
		return polygonContains(p, x, y)
	case *geom.MultiPolygon:
		for i := 0; i < p.NumPolygons(); i++ {
			if polygonContains(p.Polygon(i), x, y) {
				return true
			}
		}
	}
	return false
}

// polygonContains runs a ray-crossing test over the exterior ring and
// subtracts holes.
func polygonContains(p *geom.Polygon, x, y float64) bool {
	if p.NumLinearRings() == 0 {
		return false
	}
	if !ringContains(p.LinearRing(0), x, y) {
		return false
	}
	for i := 1; i < p.NumLinearRings(); i++ {
		if ringContains(p.LinearRing(i), x, y) {
			return false
		}
	}
	return true
}

func ringContains(ring *geom.LinearRing, x, y float64) bool {
	coords := ring.Coords()
	inside := false
	n := len(coords)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := coords[i].X(), coords[i].Y()
		xj, yj := coords[j].X(), coords[j].Y()
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// Match returns the containing active area with the highest priority,
// ties broken by lowest id. Nil when the point is outside all areas.
func Match(lat, lng float64, areas []models.ServiceArea) *models.ServiceArea {
	var best *models.ServiceArea
	for i := range areas {
		a := &areas[i]
		if !a.Active || !Contains(*a, lat, lng) {
			continue
		}
		if best == nil || a.Priority > best.Priority || (a.Priority == best.Priority && a.ID < best.ID) {
			best = a
		}
	}
	return best
}

// Surcharge computes the area's price adjustment on the given amount:
// flat fee plus basis-point percentage, half-up rounding.
func Surcharge(area *models.ServiceArea, amount int64) int64 {
	if area == nil {
		return 0
	}
	return area.FlatSurcharge + (amount*area.PercentSurchargeBps+5000)/10000
}
