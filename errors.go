package geoconvert

import "errors"

// Sentinel errors returned by the conversion routines. Errors carry a
// descriptive message wrapped around one of these values, so callers can
// classify failures with errors.Is while still getting a diagnostic that
// names the offending input.
var (
	// ErrInvalidCoord indicates a latitude/longitude outside its valid
	// domain (or a non-finite value).
	ErrInvalidCoord = errors.New("coordinate parameters are not valid")

	// ErrInvalidZone indicates a zone number outside [0, 60].
	ErrInvalidZone = errors.New("zone not in range [0, 60]")

	// ErrInvalidPrecision indicates an MGRS precision outside [-1, 11].
	ErrInvalidPrecision = errors.New("precision not in range [-1, 11]")

	// ErrInvalidUtmUps indicates an easting or northing outside the legal
	// window for the given zone type and hemisphere.
	ErrInvalidUtmUps = errors.New("UTM/UPS coordinates are invalid")

	// ErrInvalidMgrs indicates an MGRS string that failed to parse, or MGRS
	// components that do not describe a valid grid position.
	ErrInvalidMgrs = errors.New("MGRS string is invalid")
)
