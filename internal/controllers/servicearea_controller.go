package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ridebook/internal/config"
	"ridebook/internal/geofence"
	"ridebook/internal/models"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// ServiceAreaResponse mirrors models.ServiceArea with Geometry as a GeoJSON
// string for API output.
type ServiceAreaResponse struct {
	ID                  uint           `json:"ID"`
	CreatedAt           time.Time      `json:"CreatedAt"`
	UpdatedAt           time.Time      `json:"UpdatedAt"`
	DeletedAt           gorm.DeletedAt `json:"DeletedAt,omitempty"`
	Name                string         `json:"name"`
	Kind                string         `json:"kind"`
	Geometry            string         `json:"geometry,omitempty"`
	CenterLat           float64        `json:"center_lat"`
	CenterLng           float64        `json:"center_lng"`
	RadiusMeters        float64        `json:"radius_meters"`
	FlatSurcharge       int64          `json:"flat_surcharge"`
	PercentSurchargeBps int64          `json:"percent_surcharge_bps"`
	Priority            int            `json:"priority"`
	Active              bool           `json:"active"`
}

func toServiceAreaResponse(area models.ServiceArea) ServiceAreaResponse {
	jsonGeom, _ := convertWKBToGeoJSON(area.Geometry)
	return ServiceAreaResponse{
		ID:                  area.ID,
		CreatedAt:           area.CreatedAt,
		UpdatedAt:           area.UpdatedAt,
		DeletedAt:           area.DeletedAt,
		Name:                area.Name,
		Kind:                area.Kind,
		Geometry:            jsonGeom,
		CenterLat:           area.CenterLat,
		CenterLng:           area.CenterLng,
		RadiusMeters:        area.RadiusMeters,
		FlatSurcharge:       area.FlatSurcharge,
		PercentSurchargeBps: area.PercentSurchargeBps,
		Priority:            area.Priority,
		Active:              area.Active,
	}
}

// parseAndConvertGeometry parses a GeoJSON string into a geom.T and returns WKB bytes
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	err := gjson.Unmarshal([]byte(raw), &g)
	if err != nil {
		return nil, err
	}
	switch g.(type) {
	case *geom.Polygon, *geom.MultiPolygon:
	default:
		return nil, errors.New("geometry must be a Polygon or MultiPolygon")
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type serviceAreaInput struct {
	Name                string  `json:"name" binding:"required"`
	Kind                string  `json:"kind" binding:"required"`
	Geometry            string  `json:"geometry"` // GeoJSON Polygon/MultiPolygon
	CenterLat           float64 `json:"center_lat"`
	CenterLng           float64 `json:"center_lng"`
	RadiusMeters        float64 `json:"radius_meters"`
	FlatSurcharge       int64   `json:"flat_surcharge"`
	PercentSurchargeBps int64   `json:"percent_surcharge_bps"`
	Priority            int     `json:"priority"`
	Active              *bool   `json:"active"`
}

func (in serviceAreaInput) validate() error {
	switch in.Kind {
	case models.AreaPolygon:
		if in.Geometry == "" {
			return errors.New("polygon areas require geometry")
		}
	case models.AreaCircle:
		if in.RadiusMeters <= 0 {
			return errors.New("circle areas require a positive radius_meters")
		}
	default:
		return errors.New("kind must be polygon or circle")
	}
	if in.FlatSurcharge < 0 || in.PercentSurchargeBps < 0 {
		return errors.New("surcharges must not be negative")
	}
	return nil
}

// CreateServiceArea registers a new geofenced surcharge area.
func CreateServiceArea(c *gin.Context) {
	var input serviceAreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if err := input.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wkbGeom, err := parseAndConvertGeometry(input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	area := models.ServiceArea{
		Name:                input.Name,
		Kind:                input.Kind,
		Geometry:            wkbGeom,
		CenterLat:           input.CenterLat,
		CenterLng:           input.CenterLng,
		RadiusMeters:        input.RadiusMeters,
		FlatSurcharge:       input.FlatSurcharge,
		PercentSurchargeBps: input.PercentSurchargeBps,
		Priority:            input.Priority,
		Active:              active,
	}
	if err := config.DB.Create(&area).Error; err != nil {
		logrus.WithError(err).Error("CreateServiceArea: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create area failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"service_area": toServiceAreaResponse(area)})
}

// ListServiceAreas lists all areas (inactive included; the admin UI toggles them).
func ListServiceAreas(c *gin.Context) {
	var areas []models.ServiceArea
	if err := config.DB.Order("priority DESC, id ASC").Find(&areas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch service areas"})
		return
	}

	var responses []ServiceAreaResponse
	for _, a := range areas {
		responses = append(responses, toServiceAreaResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// GetServiceArea returns a single area by id.
func GetServiceArea(c *gin.Context) {
	id := c.Param("id")
	var area models.ServiceArea
	if err := config.DB.First(&area, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service area not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service_area": toServiceAreaResponse(area)})
}

// UpdateServiceArea modifies an existing area.
func UpdateServiceArea(c *gin.Context) {
	id := c.Param("id")
	var area models.ServiceArea
	if err := config.DB.First(&area, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service area not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name                *string  `json:"name"`
		Geometry            *string  `json:"geometry"`
		CenterLat           *float64 `json:"center_lat"`
		CenterLng           *float64 `json:"center_lng"`
		RadiusMeters        *float64 `json:"radius_meters"`
		FlatSurcharge       *int64   `json:"flat_surcharge"`
		PercentSurchargeBps *int64   `json:"percent_surcharge_bps"`
		Priority            *int     `json:"priority"`
		Active              *bool    `json:"active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		area.Name = *input.Name
	}
	if input.Geometry != nil {
		if *input.Geometry == "" {
			area.Geometry = nil
		} else {
			wkbGeom, err := parseAndConvertGeometry(*input.Geometry)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
				return
			}
			area.Geometry = wkbGeom
		}
	}
	if input.CenterLat != nil {
		area.CenterLat = *input.CenterLat
	}
	if input.CenterLng != nil {
		area.CenterLng = *input.CenterLng
	}
	if input.RadiusMeters != nil {
		area.RadiusMeters = *input.RadiusMeters
	}
	if input.FlatSurcharge != nil {
		area.FlatSurcharge = *input.FlatSurcharge
	}
	if input.PercentSurchargeBps != nil {
		area.PercentSurchargeBps = *input.PercentSurchargeBps
	}
	if input.Priority != nil {
		area.Priority = *input.Priority
	}
	if input.Active != nil {
		area.Active = *input.Active
	}

	if err := config.DB.Save(&area).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"service_area": toServiceAreaResponse(area)})
}

// DeleteServiceArea removes an area.
func DeleteServiceArea(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.ServiceArea{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service area"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service area deleted"})
}

// CheckServiceArea resolves which area (if any) covers a point. Useful for
// the admin map view.
func CheckServiceArea(c *gin.Context) {
	var input struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var areas []models.ServiceArea
	if err := config.DB.Where("active = ?", true).Find(&areas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	match := geofence.Match(input.Lat, input.Lng, areas)
	if match == nil {
		c.JSON(http.StatusOK, gin.H{"match": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": toServiceAreaResponse(*match)})
}
