package domain

import "errors"

// Precondition violations. Surfaced to the caller before any computation and
// never recovered internally.
var (
	// ErrInvalidElevation reports an elevation angle outside (0°, 90°].
	// Angles at or below the horizon make the slant-path geometry undefined.
	ErrInvalidElevation = errors.New("elevation angle must be within (0, 90] degrees")

	// ErrEmptyFrequencyPlan reports a station assessment with no frequencies.
	ErrEmptyFrequencyPlan = errors.New("frequency plan must contain at least one entry")

	// ErrInvalidLatitude reports a latitude outside [-90, 90].
	ErrInvalidLatitude = errors.New("latitude must be within [-90, 90] degrees")

	// ErrInvalidLongitude reports a longitude outside [-180, 180].
	ErrInvalidLongitude = errors.New("longitude must be within [-180, 180] degrees")

	// ErrInvalidFrequency reports a non-positive frequency in a plan entry.
	ErrInvalidFrequency = errors.New("frequency must be greater than 0 GHz")
)
