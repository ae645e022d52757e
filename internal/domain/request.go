package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultStationElevationMeters is assumed when a request omits the site
// altitude.
const DefaultStationElevationMeters = 100.0

// RequestPosition is the wire form of a station location. ElevationMeters is
// a pointer to distinguish "absent" (defaulted to 100 m) from an explicit 0.
type RequestPosition struct {
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	ElevationMeters *float64 `json:"elevation_meters,omitempty"`
}

// AssessmentRequest is the wire form of one station assessment call.
type AssessmentRequest struct {
	StationID                 string               `json:"station_id"`
	Position                  RequestPosition      `json:"position"`
	FrequencyPlan             []FrequencyPlanEntry `json:"frequency_plan"`
	ElevationAngles           ElevationAngles      `json:"elevation_angles"`
	TargetAvailabilityPercent float64              `json:"target_availability_percent,omitempty"`
}

// GeoPosition resolves the request position, applying the elevation default.
func (r AssessmentRequest) GeoPosition() GeoPosition {
	elevation := DefaultStationElevationMeters
	if r.Position.ElevationMeters != nil {
		elevation = *r.Position.ElevationMeters
	}
	return GeoPosition{
		Latitude:        r.Position.Latitude,
		Longitude:       r.Position.Longitude,
		ElevationMeters: elevation,
	}
}

// ParseAssessmentRequest deserializes a raw message value into an
// AssessmentRequest.
func ParseAssessmentRequest(raw RawEvent) (AssessmentRequest, error) {
	var req AssessmentRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return AssessmentRequest{}, fmt.Errorf("parse assessment request: %w", err)
	}
	return req, nil
}

// StationAssessment is the service envelope around a WeatherImpactAssessment.
// The embedded assessment is a pure function of the request; only
// ProcessedAt depends on the (injectable) clock.
type StationAssessment struct {
	WeatherImpactAssessment

	ProcessedAt time.Time `json:"processed_at"`

	RawPayload []byte `json:"-"`
}

// AssessRequest runs the model for one request and stamps the envelope.
func AssessRequest(req AssessmentRequest) (StationAssessment, error) {
	assessment, err := Assess(
		req.StationID,
		req.GeoPosition(),
		req.FrequencyPlan,
		req.ElevationAngles,
		req.TargetAvailabilityPercent,
	)
	if err != nil {
		return StationAssessment{}, err
	}
	return StationAssessment{
		WeatherImpactAssessment: assessment,
		ProcessedAt:             clock.Now(),
	}, nil
}
