package region

// Region is an administrative reference area (regency/city) with a representative coordinate.
// Regions are owned by the master-data collaborator and only read here.
type Region struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Match is the outcome of a nearest-region lookup.
type Match struct {
	Region     Region
	DistanceKm float64
}
