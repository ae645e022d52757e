package domain

import "time"

// CycloneRisk flags tropical-cyclone exposure of a site.
type CycloneRisk string

const (
	CycloneRiskLow    CycloneRisk = "low"
	CycloneRiskMedium CycloneRisk = "medium"
)

// ClimaticProfile is the simplified climate statistics of a station site.
// Derived fresh per assessment from the latitude bucket; never cached.
type ClimaticProfile struct {
	// RainRate001 is the rain intensity (mm/h) exceeded 0.01% of an average
	// year; RainRate1 the intensity exceeded 0.1% of the year. The rarer
	// exceedance is always the more intense: RainRate001 ≥ RainRate1 ≥ 0.
	RainRate001 float64
	RainRate1   float64

	AnnualRainfallMm  float64
	TemperatureRangeC [2]float64 // [min, max]
	HumidityPercent   float64

	WetSeasonMonths []time.Month
	DrySeasonMonths []time.Month

	CycloneRisk CycloneRisk
}

// Latitude bucket boundaries, half-open: [0,10) equatorial, [10,45)
// temperate, [45,90] polar/dry.
const (
	equatorialMaxLatitude  = 10.0
	temperateMaxLatitude   = 45.0
	cycloneBeltMaxLatitude = 30.0
)

// ResolveClimate maps a station location to its climatic profile. Pure
// function of absolute latitude; longitude is not consulted, including for
// the cyclone flag (the belt check is latitude-only).
func ResolveClimate(position GeoPosition) ClimaticProfile {
	lat := position.Latitude
	if lat < 0 {
		lat = -lat
	}

	var profile ClimaticProfile
	switch {
	case lat < equatorialMaxLatitude:
		profile = ClimaticProfile{
			RainRate001:       145,
			RainRate1:         42,
			AnnualRainfallMm:  2500,
			TemperatureRangeC: [2]float64{22, 32},
			HumidityPercent:   80,
			WetSeasonMonths:   monthRange(time.May, time.October),
			DrySeasonMonths: []time.Month{
				time.November, time.December, time.January,
				time.February, time.March, time.April,
			},
		}
	case lat < temperateMaxLatitude:
		profile = ClimaticProfile{
			RainRate001:       42,
			RainRate1:         12,
			AnnualRainfallMm:  800,
			TemperatureRangeC: [2]float64{0, 25},
			HumidityPercent:   65,
			WetSeasonMonths:   midLatitudeWetMonths(),
			DrySeasonMonths:   midLatitudeDryMonths(),
		}
	default:
		profile = ClimaticProfile{
			RainRate001:       8,
			RainRate1:         2,
			AnnualRainfallMm:  200,
			TemperatureRangeC: [2]float64{-10, 10},
			HumidityPercent:   45,
			WetSeasonMonths:   midLatitudeWetMonths(),
			DrySeasonMonths:   midLatitudeDryMonths(),
		}
	}

	profile.CycloneRisk = CycloneRiskLow
	if lat < cycloneBeltMaxLatitude {
		profile.CycloneRisk = CycloneRiskMedium
	}
	return profile
}

// midLatitudeWetMonths returns the spring/autumn wet months shared by the
// temperate and polar buckets.
func midLatitudeWetMonths() []time.Month {
	return []time.Month{
		time.March, time.April, time.May,
		time.September, time.October, time.November,
	}
}

func midLatitudeDryMonths() []time.Month {
	return []time.Month{time.June, time.July, time.August}
}

func monthRange(from, to time.Month) []time.Month {
	months := make([]time.Month, 0, int(to-from)+1)
	for m := from; m <= to; m++ {
		months = append(months, m)
	}
	return months
}
