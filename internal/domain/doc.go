// Package domain implements the weather impact / link-availability model for
// satellite ground stations.
//
// # Model structure
//
// Three layered, purely functional responsibilities:
//
//  1. Climatic zone resolution ([ResolveClimate]): maps a station location to
//     a simplified climatic profile keyed on absolute latitude. This is an
//     explicit stand-in for real climate data, not a forecast feed.
//  2. Link attenuation ([RainAttenuation], [ComputeLinkAvailability]): rain
//     attenuation in the style of ITU-R P.838 (specific attenuation k·R^α
//     over a capped slant path with a path-reduction factor), a simplified
//     gas term, a constant cloud term, and a discretized availability tier
//     derived from the total against the engineered link margin.
//  3. Station assessment ([Assess]): aggregates per-frequency availability,
//     weighted by operational importance, into one station-level verdict
//     with capacity-loss estimates, ranked mitigation recommendations, and
//     an SLA risk class.
//
// # Latitude buckets
//
// Absolute latitude L selects the climatic profile (boundaries half-open):
//
//	Equatorial  L < 10:        R(0.01%) = 145 mm/h, 2500 mm/yr, humid
//	Temperate   10 ≤ L < 45:   R(0.01%) = 42 mm/h,  800 mm/yr
//	Polar/dry   L ≥ 45:        R(0.01%) = 8 mm/h,   200 mm/yr
//
// Cyclone exposure is flagged for the tropical belt (L < 30). Longitude is
// validated but never consulted; the belt check is latitude-only.
//
// # Rain attenuation
//
// Specific attenuation is k·R^α dB/km with ITU-R P.838-3 regression
// coefficients at the {4, 6, 12, 14, 20, 30} GHz anchors (C, Ku, Ka bands).
// An arbitrary frequency uses the nearest anchor; exact midpoints keep the
// lower anchor. The slant path assumes a 3 km rain layer and is capped at
// 10 km; paths accumulating more than 1 dB get a reduction factor modelling
// the limited horizontal extent of rain cells.
//
// # Availability tiers
//
// Total attenuation uses the 0.01%-exceedance rain rate (the rarer, more
// intense event). Given link margin M, the tier is:
//
//	total ≤ M        99.99%
//	total ≤ M + 5    99.9%
//	total ≤ M + 10   99.5%
//	total ≤ M + 15   99.0%
//	otherwise        98.0%
//
// Yearly outage is always 8760 · (100 − availability) / 100 hours.
//
// # Determinism
//
// Every operation is a pure function of its arguments: identical inputs
// always produce identical assessments, which planning callers rely on for
// comparisons. The only time dependence is the ProcessedAt envelope stamp on
// [StationAssessment], taken from the injectable package clock (see
// [SetClock]) so offline runs and tests can pin it.
//
// # Failure modes
//
// Precondition violations (elevation ≤ 0°, empty frequency plan,
// out-of-range coordinates, non-positive frequency) are rejected before any
// computation and never substituted with defaults: a plausible-looking
// availability number derived from invalid geometry is worse than a hard
// failure for planning decisions. All other valid inputs succeed; there is
// no I/O and no retryable failure mode.
package domain
