package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveClimate_LatitudeBuckets(t *testing.T) {
	tests := []struct {
		name            string
		latitude        float64
		rainRate001     float64
		rainRate1       float64
		annualRainfall  float64
		humidityPercent float64
	}{
		{"equatorial", 1.3, 145, 42, 2500, 80},
		{"equatorial southern hemisphere", -9.5, 145, 42, 2500, 80},
		{"just below equatorial boundary", 9.999, 145, 42, 2500, 80},
		{"equatorial boundary is temperate", 10.0, 42, 12, 800, 65},
		{"temperate", 35, 42, 12, 800, 65},
		{"just below polar boundary", 44.999, 42, 12, 800, 65},
		{"polar boundary is polar", 45.0, 8, 2, 200, 45},
		{"polar", 68, 8, 2, 200, 45},
		{"southern polar", -72, 8, 2, 200, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ResolveClimate(GeoPosition{Latitude: tt.latitude, Longitude: 103.8})

			assert.Equal(t, tt.rainRate001, profile.RainRate001)
			assert.Equal(t, tt.rainRate1, profile.RainRate1)
			assert.Equal(t, tt.annualRainfall, profile.AnnualRainfallMm)
			assert.Equal(t, tt.humidityPercent, profile.HumidityPercent)
		})
	}
}

func TestResolveClimate_ExceedanceInvariant(t *testing.T) {
	// The 0.01% exceedance rain rate is always at least the 0.1% rate.
	for lat := -90.0; lat <= 90; lat += 2.5 {
		profile := ResolveClimate(GeoPosition{Latitude: lat})
		assert.GreaterOrEqual(t, profile.RainRate001, profile.RainRate1, "lat %.1f", lat)
		assert.GreaterOrEqual(t, profile.RainRate1, 0.0, "lat %.1f", lat)
	}
}

func TestResolveClimate_CycloneBelt(t *testing.T) {
	tests := []struct {
		name     string
		latitude float64
		want     CycloneRisk
	}{
		{"equator", 0, CycloneRiskMedium},
		{"tropics", 22, CycloneRiskMedium},
		{"southern tropics", -29.999, CycloneRiskMedium},
		{"belt boundary", 30, CycloneRiskLow},
		{"mid latitude", 48, CycloneRiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ResolveClimate(GeoPosition{Latitude: tt.latitude})
			assert.Equal(t, tt.want, profile.CycloneRisk)
		})
	}
}

func TestResolveClimate_LongitudeHasNoEffect(t *testing.T) {
	for _, lon := range []float64{-180, -77.3, 0, 103.8, 180} {
		a := ResolveClimate(GeoPosition{Latitude: 12, Longitude: lon})
		b := ResolveClimate(GeoPosition{Latitude: 12, Longitude: 0})
		assert.Equal(t, b, a, "longitude %.1f", lon)
	}
}

func TestResolveClimate_SeasonStructure(t *testing.T) {
	t.Run("equatorial wet season May through October", func(t *testing.T) {
		profile := ResolveClimate(GeoPosition{Latitude: 1.3})

		assert.Equal(t, []time.Month{
			time.May, time.June, time.July, time.August,
			time.September, time.October,
		}, profile.WetSeasonMonths)
		assert.Len(t, profile.DrySeasonMonths, 6)
	})

	t.Run("temperate and polar share mid-latitude seasons", func(t *testing.T) {
		temperate := ResolveClimate(GeoPosition{Latitude: 30})
		polar := ResolveClimate(GeoPosition{Latitude: 60})

		assert.Equal(t, temperate.WetSeasonMonths, polar.WetSeasonMonths)
		assert.Equal(t, temperate.DrySeasonMonths, polar.DrySeasonMonths)
		assert.Equal(t, []time.Month{time.June, time.July, time.August}, polar.DrySeasonMonths)
	})

	t.Run("every month is either wet or dry", func(t *testing.T) {
		for _, lat := range []float64{5, 25, 55} {
			profile := ResolveClimate(GeoPosition{Latitude: lat})
			seen := map[time.Month]bool{}
			for _, m := range profile.WetSeasonMonths {
				seen[m] = true
			}
			for _, m := range profile.DrySeasonMonths {
				assert.False(t, seen[m], "month %v in both seasons at lat %.0f", m, lat)
				seen[m] = true
			}
			assert.Len(t, seen, 12, "lat %.0f", lat)
		}
	})
}
