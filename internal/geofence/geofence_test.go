package geofence

import (
	"encoding/binary"
	"testing"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	"ridebook/internal/models"
)

func TestHaversineZero(t *testing.T) {
	d := Haversine(0, 0, 0, 0)
	if d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// One degree of latitude is ~111km
	d := Haversine(0, 0, 1, 0)
	if d < 110000 || d > 112000 {
		t.Fatalf("expected ~111km, got %f", d)
	}
}

// squareArea builds a polygon service area covering [-1,1] x [-1,1]
// (GeoJSON coordinate order is lng,lat).
func squareArea(t *testing.T) models.ServiceArea {
	t.Helper()
	poly := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1},
	}})
	b, err := wkb.Marshal(poly, binary.LittleEndian)
	if err != nil {
		t.Fatalf("wkb marshal: %v", err)
	}
	area := models.ServiceArea{
		Name:                "downtown",
		Kind:                models.AreaPolygon,
		Geometry:            b,
		FlatSurcharge:       250,
		PercentSurchargeBps: 500,
		Active:              true,
	}
	area.ID = 1
	return area
}

func TestPolygonContains(t *testing.T) {
	area := squareArea(t)
	if !Contains(area, 0, 0) {
		t.Fatal("expected center point inside")
	}
	if !Contains(area, 0.9, -0.9) {
		t.Fatal("expected corner-adjacent point inside")
	}
	if Contains(area, 2, 0) {
		t.Fatal("expected point east of square outside")
	}
	if Contains(area, 0, 5) {
		t.Fatal("expected far point outside")
	}
}

func TestCircleContains(t *testing.T) {
	area := models.ServiceArea{
		Kind:         models.AreaCircle,
		CenterLat:    40.0,
		CenterLng:    -74.0,
		RadiusMeters: 5000,
		Active:       true,
	}
	if !Contains(area, 40.0, -74.0) {
		t.Fatal("expected center inside")
	}
	if !Contains(area, 40.01, -74.0) { // ~1.1km north
		t.Fatal("expected nearby point inside")
	}
	if Contains(area, 41.0, -74.0) { // ~111km north
		t.Fatal("expected distant point outside")
	}
}

func TestMatchPrefersHighestPriority(t *testing.T) {
	low := squareArea(t)
	low.Priority = 1

	high := models.ServiceArea{
		Kind:         models.AreaCircle,
		CenterLat:    0,
		CenterLng:    0,
		RadiusMeters: 300000,
		Priority:     5,
		Active:       true,
	}
	high.ID = 2
	high.Name = "airport"

	m := Match(0, 0, []models.ServiceArea{low, high})
	if m == nil || m.Name != "airport" {
		t.Fatalf("expected airport area to win, got %+v", m)
	}
}

func TestMatchSkipsInactive(t *testing.T) {
	area := squareArea(t)
	area.Active = false
	if m := Match(0, 0, []models.ServiceArea{area}); m != nil {
		t.Fatalf("expected no match for inactive area, got %+v", m)
	}
}

func TestOutsideAllAreasMeansZeroSurcharge(t *testing.T) {
	area := squareArea(t)
	m := Match(50, 50, []models.ServiceArea{area})
	if m != nil {
		t.Fatalf("expected no match, got %+v", m)
	}
	if s := Surcharge(m, 10000); s != 0 {
		t.Fatalf("expected zero surcharge, got %d", s)
	}
}

func TestSurchargeFlatPlusPercent(t *testing.T) {
	area := squareArea(t)
	// 250 flat + 5% of 10000
	if s := Surcharge(&area, 10000); s != 750 {
		t.Fatalf("expected 750, got %d", s)
	}
}
