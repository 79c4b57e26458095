package models

import (
	"gorm.io/gorm"
)

const (
	AreaPolygon = "polygon"
	AreaCircle  = "circle"
)

// ServiceArea is a geofenced region carrying a price surcharge.
// Polygon geometry is stored as WKB (SRID 4326); the API speaks GeoJSON.
// Circles are stored as center + radius and checked by haversine distance.
type ServiceArea struct {
	gorm.Model

	Name string `json:"name" binding:"required"`
	Kind string `json:"kind"` // "polygon" or "circle"

	Geometry     []byte  `gorm:"type:bytea" json:"-"`
	CenterLat    float64 `json:"center_lat"`
	CenterLng    float64 `json:"center_lng"`
	RadiusMeters float64 `json:"radius_meters"`

	// FlatSurcharge is minor units; PercentSurchargeBps applies to
	// (base + enhancements) in basis points.
	FlatSurcharge       int64 `json:"flat_surcharge"`
	PercentSurchargeBps int64 `json:"percent_surcharge_bps"`

	// Priority breaks ties when areas overlap; highest wins.
	Priority int  `json:"priority"`
	Active   bool `json:"active" gorm:"default:true"`
}
