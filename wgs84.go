package geoconvert

// WGS84 ellipsoid parameters and the standard projection scale factors.
const (
	wgs84A = 6378137.0         // semi-major axis in meters
	wgs84F = 1 / 298.257223563 // flattening
	utmK0  = 9996.0 / 10000.0  // UTM central scale factor
	upsK0  = 994.0 / 1000.0    // UPS central scale factor
)

// Shared projection instances. The coefficient tables depend only on the
// WGS84 flattening, so one instance of each serves every conversion; both
// are read-only after package initialization and safe for concurrent use.
var (
	utmProj = newTransverseMercator(wgs84A, wgs84F, utmK0)
	upsProj = newPolarStereographic(wgs84A, wgs84F, upsK0)
)
