package domain

import (
	"fmt"
	"math"
	"strings"
)

// SLARisk classifies how far predicted availability falls below the
// contractual target.
type SLARisk string

const (
	SLARiskLow      SLARisk = "low"
	SLARiskMedium   SLARisk = "medium"
	SLARiskHigh     SLARisk = "high"
	SLARiskCritical SLARisk = "critical"
)

// DefaultTargetAvailabilityPercent applies when a request omits its target.
const DefaultTargetAvailabilityPercent = 99.5

// Service-level slot names keyed by band and frequency-within-band.
const (
	SlotCBandUplink    = "c_band_uplink"
	SlotCBandDownlink  = "c_band_downlink"
	SlotKuBandUplink   = "ku_band_uplink"
	SlotKuBandDownlink = "ku_band_downlink"
	SlotKaBandUplink   = "ka_band_uplink"
	SlotKaBandDownlink = "ka_band_downlink"
)

// CapacityReduction estimates capacity lost to weather outages.
type CapacityReduction struct {
	AnnualPercent      float64 `json:"annual_percent"`
	SeasonalPercent    float64 `json:"seasonal_percent"`
	ContingencyPercent float64 `json:"contingency_percent"`
}

// WeatherImpactAssessment is the station-level result. Constructed fresh per
// call and never mutated afterwards.
type WeatherImpactAssessment struct {
	StationID                  string                      `json:"station_id"`
	OverallAvailabilityPercent float64                     `json:"overall_availability_percent"`
	ServiceLevelAvailability   map[string]LinkAvailability `json:"service_level_availability"`
	CapacityReduction          CapacityReduction           `json:"capacity_reduction"`
	MitigationStrategies       []string                    `json:"mitigation_strategies"`
	SLARisk                    SLARisk                     `json:"sla_risk"`
}

// Assess computes the weather impact assessment for one station. The climatic
// profile is resolved once, each plan entry is evaluated at the typical
// elevation with a fixed 6 dB margin, and the per-entry availabilities are
// folded into a weighted station aggregate. A non-positive
// targetAvailabilityPercent falls back to DefaultTargetAvailabilityPercent.
func Assess(stationID string, position GeoPosition, plan []FrequencyPlanEntry, angles ElevationAngles, targetAvailabilityPercent float64) (WeatherImpactAssessment, error) {
	if err := position.Validate(); err != nil {
		return WeatherImpactAssessment{}, err
	}
	if len(plan) == 0 {
		return WeatherImpactAssessment{}, fmt.Errorf("station %q: %w", stationID, ErrEmptyFrequencyPlan)
	}
	if angles.TypicalDeg <= 0 || angles.TypicalDeg > 90 {
		return WeatherImpactAssessment{}, fmt.Errorf("%w: typical angle %.2f", ErrInvalidElevation, angles.TypicalDeg)
	}
	for _, entry := range plan {
		if entry.FrequencyGHz <= 0 {
			return WeatherImpactAssessment{}, fmt.Errorf("%w: %q entry at %.2f GHz", ErrInvalidFrequency, entry.Band, entry.FrequencyGHz)
		}
	}
	if targetAvailabilityPercent <= 0 {
		targetAvailabilityPercent = DefaultTargetAvailabilityPercent
	}

	profile := ResolveClimate(position)

	// Weighted availability as a fold over the plan. Entries outside the
	// known bands still contribute to the aggregate; they just get no
	// service-level slot.
	slots := make(map[string]LinkAvailability, len(plan))
	var weightedSum, weightTotal float64
	for _, entry := range plan {
		link, err := ComputeLinkAvailability(entry.FrequencyGHz, angles.TypicalDeg, profile, AssessmentLinkMarginDb)
		if err != nil {
			return WeatherImpactAssessment{}, err
		}

		weight := 1.0
		if strings.Contains(strings.ToLower(entry.Usage), "primary") {
			weight = 2.0
		}
		weightedSum += link.AvailabilityPercent * weight
		weightTotal += weight

		if slot, ok := serviceSlot(entry); ok {
			slots[slot] = link
		}
	}
	overall := weightedSum / weightTotal

	// Capacity math: the ×2 redundancy multiplier and seasonal factors are
	// fixed planning assumptions, not measured values.
	annual := (100 - overall) * 2
	seasonalFactor := 1.8
	if len(profile.WetSeasonMonths) > 6 {
		seasonalFactor = 2.5
	}
	seasonal := math.Min(annual*seasonalFactor, 95)
	contingency := math.Max(10, annual*1.5)

	return WeatherImpactAssessment{
		StationID:                  stationID,
		OverallAvailabilityPercent: overall,
		ServiceLevelAvailability:   slots,
		CapacityReduction: CapacityReduction{
			AnnualPercent:      annual,
			SeasonalPercent:    seasonal,
			ContingencyPercent: contingency,
		},
		MitigationStrategies: mitigationStrategies(overall, profile, plan),
		SLARisk:              classifySLARisk(overall, targetAvailabilityPercent),
	}, nil
}

// serviceSlot classifies a plan entry into one of the six named slots.
// Returns false for bands outside C/Ku/Ka.
func serviceSlot(entry FrequencyPlanEntry) (string, bool) {
	band := strings.ToLower(entry.Band)
	switch {
	case strings.HasPrefix(band, "ku"):
		if entry.FrequencyGHz < 13 {
			return SlotKuBandUplink, true
		}
		return SlotKuBandDownlink, true
	case strings.HasPrefix(band, "ka"):
		if entry.FrequencyGHz < 25 {
			return SlotKaBandUplink, true
		}
		return SlotKaBandDownlink, true
	case strings.HasPrefix(band, "c"):
		if entry.FrequencyGHz < 6 {
			return SlotCBandUplink, true
		}
		return SlotCBandDownlink, true
	default:
		return "", false
	}
}

// classifySLARisk bands the overall availability against the target.
func classifySLARisk(overall, target float64) SLARisk {
	switch {
	case overall >= target:
		return SLARiskLow
	case overall >= target-0.5:
		return SLARiskMedium
	case overall >= target-1.0:
		return SLARiskHigh
	default:
		return SLARiskCritical
	}
}

// mitigationStrategies appends recommendations in a fixed rule order. Rules
// only ever append; duplicates across rules are allowed.
func mitigationStrategies(overall float64, profile ClimaticProfile, plan []FrequencyPlanEntry) []string {
	var strategies []string

	if overall < 99.5 {
		strategies = append(strategies,
			"site diversity / backup earth station",
			"adaptive coding and modulation (ACM)",
		)
	}
	if overall < 99.0 {
		strategies = append(strategies,
			"uplink power control (ULPC)",
			"frequency diversity across bands",
		)
	}
	if profile.RainRate001 > 100 {
		strategies = append(strategies,
			"weather-radar fade prediction integration",
			"fade prediction algorithms",
		)
	}
	for _, entry := range plan {
		if entry.FrequencyGHz > 18 {
			strategies = append(strategies,
				"Ka-band-specific fade mitigation",
				"hybrid C/Ka-band provisioning",
			)
			break
		}
	}

	return strategies
}
