package domain

// GeocodeResult - найденная точка для адреса
type GeocodeResult struct {
	Lat       float64
	Lon       float64
	PlaceName string
	Relevance float64
}

// Coordinate - пара координат
type Coordinate struct {
	Lat float64
	Lon float64
}
