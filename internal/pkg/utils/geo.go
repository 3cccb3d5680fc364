package utils

import (
	"regexp"
	"strconv"
)

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// googleMapsPatterns - форматы координат в ссылках Google Maps, в порядке приоритета
var googleMapsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`@(-?\d+\.?\d*),(-?\d+\.?\d*)`),       // @lat,lng
	regexp.MustCompile(`!3d(-?\d+\.?\d*)!4d(-?\d+\.?\d*)`),   // !3dlat!4dlng
	regexp.MustCompile(`[?&]ll=(-?\d+\.?\d*),(-?\d+\.?\d*)`), // ll=lat,lng
}

// ParseGoogleMapsCoordinates извлекает координаты из ссылки Google Maps.
// ok=false, если координат нет или они вне допустимого диапазона.
func ParseGoogleMapsCoordinates(url string) (lat, lon float64, ok bool) {
	for _, pattern := range googleMapsPatterns {
		match := pattern.FindStringSubmatch(url)
		if match == nil {
			continue
		}

		la, errLat := strconv.ParseFloat(match[1], 64)
		lo, errLon := strconv.ParseFloat(match[2], 64)
		if errLat != nil || errLon != nil || !ValidateCoordinates(la, lo) {
			continue
		}
		return la, lo, true
	}
	return 0, 0, false
}
