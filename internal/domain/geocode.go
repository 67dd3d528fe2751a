package domain

import (
	"context"
	"log/slog"
)

// AreaLocation anchors a heat map to real-world coordinates.
type AreaLocation struct {
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	Confidence       float64 `json:"confidence,omitempty"`
}

// LocateArea geocodes a location name. It returns nil when geocoder is nil,
// the lookup fails, or the provider has no match (graceful degradation).
func LocateArea(ctx context.Context, geocoder Geocoder, location, region string, logger *slog.Logger) *AreaLocation {
	if geocoder == nil || NormalizeLocation(location) == "" {
		return nil
	}

	result, err := geocoder.ForwardGeocode(ctx, location, region)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"location", location,
			"region", region,
			"error", err,
		)
		return nil
	}
	if result.Lat == 0 && result.Lon == 0 {
		return nil
	}

	return &AreaLocation{
		Lat:              result.Lat,
		Lon:              result.Lon,
		FormattedAddress: result.FormattedAddress,
		PlaceName:        result.PlaceName,
		Confidence:       result.Confidence,
	}
}
