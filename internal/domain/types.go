package domain

import "fmt"

// GeoPosition is a WGS-84 station location. ElevationMeters is the site
// altitude above sea level, defaulted to 100 m by the request layer when the
// caller omits it.
type GeoPosition struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	ElevationMeters float64 `json:"elevation_meters"`
}

// Validate checks the coordinate ranges.
func (p GeoPosition) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: got %.4f", ErrInvalidLatitude, p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: got %.4f", ErrInvalidLongitude, p.Longitude)
	}
	return nil
}

// FrequencyPlanEntry is one operating frequency of a station as supplied by
// the planning caller. Usage is a free-form tag; entries whose usage contains
// "primary" carry double weight in the station aggregate.
type FrequencyPlanEntry struct {
	Band         string  `json:"band"` // e.g. "C-band", "Ku-band", "Ka-band"
	FrequencyGHz float64 `json:"frequency_ghz"`
	Usage        string  `json:"usage"` // e.g. "primary downlink"
}

// ElevationAngles describes the antenna look-angle envelope of a station.
// The assessment evaluates attenuation at the typical angle; the minimum is
// carried through for the caller's reference.
type ElevationAngles struct {
	MinimumDeg float64 `json:"minimum_deg"`
	TypicalDeg float64 `json:"typical_deg"`
}
