package domain

import (
	"fmt"
	"math"
)

// Polarization selects the rain-coefficient pair for a link.
type Polarization string

const (
	PolarizationHorizontal Polarization = "H"
	PolarizationVertical   Polarization = "V"
)

const (
	// rainLayerHeightKm is the assumed vertical extent of the rain layer.
	rainLayerHeightKm = 3.0
	// maxRainPathKm caps the slant path through rain so attenuation stays
	// bounded as the elevation angle approaches the horizon.
	maxRainPathKm = 10.0
	// maxGasPathKm caps the effective path for the gas term.
	maxGasPathKm = 5.0

	hoursPerYear = 8760.0

	// DefaultLinkMarginDb applies to standalone availability calls that pass
	// a non-positive margin. Station assessments use
	// AssessmentLinkMarginDb across the whole plan.
	DefaultLinkMarginDb    = 3.0
	AssessmentLinkMarginDb = 6.0
)

// rainCoefficient holds the ITU-R P.838-3 power-law regression coefficients
// γ = k·R^α at one reference frequency, per polarization.
type rainCoefficient struct {
	FrequencyGHz float64
	KH, AlphaH   float64
	KV, AlphaV   float64
}

// rainCoefficients anchors the supported C/Ku/Ka frequencies, in ascending
// order. Nearest-anchor selection uses a strict comparison, so an exact
// midpoint (e.g. 5 GHz) keeps the lower anchor.
var rainCoefficients = []rainCoefficient{
	{FrequencyGHz: 4, KH: 0.0001071, AlphaH: 1.6009, KV: 0.0002461, AlphaV: 1.2476},
	{FrequencyGHz: 6, KH: 0.0007056, AlphaH: 1.5900, KV: 0.0015550, AlphaV: 1.3961},
	{FrequencyGHz: 12, KH: 0.02386, AlphaH: 1.1825, KV: 0.02455, AlphaV: 1.1216},
	{FrequencyGHz: 14, KH: 0.03738, AlphaH: 1.1396, KV: 0.04126, AlphaV: 1.0646},
	{FrequencyGHz: 20, KH: 0.09164, AlphaH: 1.0568, KV: 0.09611, AlphaV: 0.9847},
	{FrequencyGHz: 30, KH: 0.2403, AlphaH: 0.9485, KV: 0.2291, AlphaV: 0.9129},
}

// LinkAvailability is the attenuation and availability estimate for one
// (frequency, elevation) pair.
type LinkAvailability struct {
	FrequencyGHz      float64 `json:"frequency_ghz"`
	ElevationAngleDeg float64 `json:"elevation_angle_deg"`

	RainAttenuationDb  float64 `json:"rain_attenuation_db"`
	GasAttenuationDb   float64 `json:"gas_attenuation_db"`
	CloudAttenuationDb float64 `json:"cloud_attenuation_db"`
	TotalAttenuationDb float64 `json:"total_attenuation_db"`

	// AvailabilityPercent is one of the discrete tiers
	// {99.99, 99.9, 99.5, 99.0, 98.0}. OutageDurationHoursPerYear is always
	// exactly 8760 · (100 − AvailabilityPercent) / 100.
	AvailabilityPercent        float64 `json:"availability_percent"`
	OutageDurationHoursPerYear float64 `json:"outage_duration_hours_per_year"`
}

// nearestRainCoefficient selects the anchor minimising the absolute
// frequency distance. Ties keep the lower anchor.
func nearestRainCoefficient(frequencyGHz float64) rainCoefficient {
	best := rainCoefficients[0]
	bestDist := math.Abs(frequencyGHz - best.FrequencyGHz)
	for _, c := range rainCoefficients[1:] {
		if d := math.Abs(frequencyGHz - c.FrequencyGHz); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// RainAttenuation returns the rain attenuation in dB along the slant path
// for the given rain rate (mm/h) and polarization.
func RainAttenuation(frequencyGHz, elevationDeg, rainRateMmPerHour float64, pol Polarization) (float64, error) {
	if elevationDeg <= 0 || elevationDeg > 90 {
		return 0, fmt.Errorf("%w: got %.2f", ErrInvalidElevation, elevationDeg)
	}
	if frequencyGHz <= 0 {
		return 0, fmt.Errorf("%w: got %.2f", ErrInvalidFrequency, frequencyGHz)
	}

	c := nearestRainCoefficient(frequencyGHz)
	k, alpha := c.KH, c.AlphaH
	if pol == PolarizationVertical {
		k, alpha = c.KV, c.AlphaV
	}

	specific := 0.0
	if rainRateMmPerHour > 0 {
		specific = k * math.Pow(rainRateMmPerHour, alpha)
	}

	pathKm := math.Min(rainLayerHeightKm/sinDeg(elevationDeg), maxRainPathKm)

	// Rain cells decorrelate over long paths; only short, lightly attenuated
	// paths see the full specific attenuation.
	reduction := 1.0
	if specific*pathKm > 1 {
		reduction = 1 / (1 + 0.045*pathKm)
	}

	return specific * pathKm * reduction, nil
}

// gasAttenuation is a simplified oxygen + water-vapor term, not a full
// line-by-line model.
func gasAttenuation(frequencyGHz, elevationDeg, humidityPercent float64) float64 {
	oxygenDb := 0.1
	if frequencyGHz >= 20 {
		oxygenDb = 0.2
	}
	waterVaporDb := humidityPercent * 0.2 * 0.05

	pathKm := math.Min(1/sinDeg(elevationDeg), maxGasPathKm)
	return (oxygenDb + waterVaporDb) * pathKm
}

// cloudAttenuation is a flat allowance, heavier above 10 GHz.
func cloudAttenuation(frequencyGHz float64) float64 {
	if frequencyGHz > 10 {
		return 0.5
	}
	return 0.2
}

// ComputeLinkAvailability evaluates one frequency/elevation pair against a
// climatic profile. The availability tier is driven by the 0.01%-exceedance
// rain rate at horizontal polarization (the worse of the two coefficient
// sets at every anchor). A non-positive linkMarginDb falls back to
// DefaultLinkMarginDb.
func ComputeLinkAvailability(frequencyGHz, elevationDeg float64, profile ClimaticProfile, linkMarginDb float64) (LinkAvailability, error) {
	if linkMarginDb <= 0 {
		linkMarginDb = DefaultLinkMarginDb
	}

	rainDb, err := RainAttenuation(frequencyGHz, elevationDeg, profile.RainRate001, PolarizationHorizontal)
	if err != nil {
		return LinkAvailability{}, err
	}
	gasDb := gasAttenuation(frequencyGHz, elevationDeg, profile.HumidityPercent)
	cloudDb := cloudAttenuation(frequencyGHz)
	totalDb := rainDb + gasDb + cloudDb

	availability := availabilityTier(totalDb, linkMarginDb)

	return LinkAvailability{
		FrequencyGHz:               frequencyGHz,
		ElevationAngleDeg:          elevationDeg,
		RainAttenuationDb:          rainDb,
		GasAttenuationDb:           gasDb,
		CloudAttenuationDb:         cloudDb,
		TotalAttenuationDb:         totalDb,
		AvailabilityPercent:        availability,
		OutageDurationHoursPerYear: hoursPerYear * (100 - availability) / 100,
	}, nil
}

// availabilityTier buckets total attenuation against the link margin.
// Non-increasing step function of totalDb for a fixed margin.
func availabilityTier(totalDb, marginDb float64) float64 {
	switch {
	case totalDb <= marginDb:
		return 99.99
	case totalDb <= marginDb+5:
		return 99.9
	case totalDb <= marginDb+10:
		return 99.5
	case totalDb <= marginDb+15:
		return 99.0
	default:
		return 98.0
	}
}

func sinDeg(deg float64) float64 {
	return math.Sin(deg * math.Pi / 180)
}
