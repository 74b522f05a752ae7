// Package geo resolves addresses to coordinates and computes
// distance/ETA for the order tracking view.
package geo

import (
	"context"
	"math"

	"food-delivery/internal/common/logger"
	"food-delivery/internal/domain"
)

// DefaultAvgSpeedKmh is the assumed courier speed when none is configured.
const DefaultAvgSpeedKmh = 40

// Geocoder is the external geocoding collaborator. Resolve returns
// domain.ErrAddressNotFound when the service has no result; callers bound
// the call with their own context deadline.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (domain.Coordinate, error)
}

// DistanceKm returns the great-circle distance between two coordinates
// using the haversine formula. Symmetric, and zero iff both points are
// equal; callers round for display, never here, so nearby-but-distinct
// points keep a nonzero distance.
func DistanceKm(a, b domain.Coordinate) float64 {
	const earthRadiusKm = 6371
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// EstimateEtaMinutes returns floor(distanceKm / avgSpeedKmh * 60).
// Non-decreasing in distanceKm for a fixed speed.
func EstimateEtaMinutes(distanceKm, avgSpeedKmh float64) int {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = DefaultAvgSpeedKmh
	}
	return int(math.Floor(distanceKm / avgSpeedKmh * 60))
}

// Estimate is the result of a route estimation. Resolved distinguishes a
// genuine zero-distance route from "one of the addresses did not resolve";
// DistanceKm and EtaMinutes are meaningless when Resolved is false.
type Estimate struct {
	Origin      domain.Coordinate
	Destination domain.Coordinate
	DistanceKm  float64
	EtaMinutes  int
	Resolved    bool
}

type Estimator struct {
	geocoder Geocoder
	speedKmh float64
	lg       *logger.Logger
}

func NewEstimator(geocoder Geocoder, avgSpeedKmh float64, lg *logger.Logger) *Estimator {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = DefaultAvgSpeedKmh
	}
	return &Estimator{geocoder: geocoder, speedKmh: avgSpeedKmh, lg: lg}
}

// EstimateRoute geocodes both addresses and computes distance and ETA.
// Geocoding failures are not fatal: the tracking view degrades to an
// unresolved estimate and the failure is logged.
func (e *Estimator) EstimateRoute(ctx context.Context, restaurantAddress, deliveryAddress string) Estimate {
	origin, err := e.geocoder.Resolve(ctx, restaurantAddress)
	if err != nil {
		e.logResolveFailure(restaurantAddress, err)
		return Estimate{}
	}
	dest, err := e.geocoder.Resolve(ctx, deliveryAddress)
	if err != nil {
		e.logResolveFailure(deliveryAddress, err)
		return Estimate{}
	}

	dist := DistanceKm(origin, dest)
	return Estimate{
		Origin:      origin,
		Destination: dest,
		DistanceKm:  dist,
		EtaMinutes:  EstimateEtaMinutes(dist, e.speedKmh),
		Resolved:    true,
	}
}

func (e *Estimator) logResolveFailure(address string, err error) {
	if e.lg != nil {
		e.lg.Error("geocode_failed", err, map[string]any{"address": address})
	}
}
