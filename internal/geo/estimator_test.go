package geo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"food-delivery/internal/domain"
)

func TestDistanceKmSymmetricAndZero(t *testing.T) {
	coords := []domain.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 51.5074, Lon: -0.1278},
		{Lat: -33.8688, Lon: 151.2093},
	}
	for _, a := range coords {
		if d := DistanceKm(a, a); d != 0 {
			t.Errorf("DistanceKm(%v, same) = %v, want 0", a, d)
		}
		for _, b := range coords {
			if ab, ba := DistanceKm(a, b), DistanceKm(b, a); ab != ba {
				t.Errorf("DistanceKm(%v, %v) = %v but reversed = %v", a, b, ab, ba)
			}
		}
	}
}

func TestDistanceKmNonzeroForDistinctPoints(t *testing.T) {
	a := domain.Coordinate{Lat: 0, Lon: 0}
	// ~3.3 m apart; still two distinct points.
	b := domain.Coordinate{Lat: 0, Lon: 0.00003}
	if d := DistanceKm(a, b); d <= 0 {
		t.Errorf("DistanceKm(%v, %v) = %v, want > 0 for distinct points", a, b, d)
	}
}

func TestDistanceKmOneDegreeOfLongitudeAtEquator(t *testing.T) {
	d := DistanceKm(domain.Coordinate{Lat: 0, Lon: 0}, domain.Coordinate{Lat: 0, Lon: 1})
	if math.Abs(d-111.2) > 0.2 {
		t.Errorf("DistanceKm = %v, want ~111.2", d)
	}
}

func TestEstimateEtaMinutes(t *testing.T) {
	tests := []struct {
		distanceKm float64
		speedKmh   float64
		want       int
	}{
		{0, 40, 0},
		{40, 40, 60},
		{111.2, 40, 166},
		{10, 0, 15}, // non-positive speed falls back to 40 km/h
		{5.5, 40, 8},
	}
	for _, tt := range tests {
		if got := EstimateEtaMinutes(tt.distanceKm, tt.speedKmh); got != tt.want {
			t.Errorf("EstimateEtaMinutes(%v, %v) = %d, want %d", tt.distanceKm, tt.speedKmh, got, tt.want)
		}
	}
}

func TestEstimateEtaMonotonic(t *testing.T) {
	prev := -1
	for d := 0.0; d < 200; d += 0.7 {
		got := EstimateEtaMinutes(d, 40)
		if got < prev {
			t.Fatalf("ETA decreased: %d < %d at distance %v", got, prev, d)
		}
		prev = got
	}
}

type fakeGeocoder struct {
	coords map[string]domain.Coordinate
}

func (f *fakeGeocoder) Resolve(ctx context.Context, address string) (domain.Coordinate, error) {
	if c, ok := f.coords[address]; ok {
		return c, nil
	}
	return domain.Coordinate{}, fmt.Errorf("geocode %q: %w", address, domain.ErrAddressNotFound)
}

func TestEstimateRoute(t *testing.T) {
	gc := &fakeGeocoder{coords: map[string]domain.Coordinate{
		"1 Main St":  {Lat: 0, Lon: 0},
		"2 Side Ave": {Lat: 0, Lon: 1},
	}}
	est := NewEstimator(gc, 40, nil)

	e := est.EstimateRoute(context.Background(), "1 Main St", "2 Side Ave")
	if !e.Resolved {
		t.Fatal("estimate not resolved")
	}
	if e.EtaMinutes != 166 {
		t.Errorf("EtaMinutes = %d, want 166", e.EtaMinutes)
	}
	if math.Abs(e.DistanceKm-111.2) > 0.2 {
		t.Errorf("DistanceKm = %v, want ~111.2", e.DistanceKm)
	}
}

func TestEstimateRouteUnresolvedAddressDegrades(t *testing.T) {
	gc := &fakeGeocoder{coords: map[string]domain.Coordinate{
		"1 Main St": {Lat: 0, Lon: 0},
	}}
	est := NewEstimator(gc, 40, nil)

	e := est.EstimateRoute(context.Background(), "1 Main St", "nowhere")
	if e.Resolved {
		t.Error("estimate resolved despite unknown delivery address")
	}
	e = est.EstimateRoute(context.Background(), "nowhere", "1 Main St")
	if e.Resolved {
		t.Error("estimate resolved despite unknown restaurant address")
	}
}

func TestEstimateRouteZeroDistanceIsResolved(t *testing.T) {
	gc := &fakeGeocoder{coords: map[string]domain.Coordinate{
		"same": {Lat: 10, Lon: 10},
	}}
	est := NewEstimator(gc, 40, nil)
	e := est.EstimateRoute(context.Background(), "same", "same")
	if !e.Resolved || e.EtaMinutes != 0 || e.DistanceKm != 0 {
		t.Errorf("same-address estimate = %+v, want resolved zero", e)
	}
}

func TestFakeGeocoderNotFoundIsTyped(t *testing.T) {
	gc := &fakeGeocoder{}
	_, err := gc.Resolve(context.Background(), "nowhere")
	if !errors.Is(err, domain.ErrAddressNotFound) {
		t.Errorf("err = %v, want ErrAddressNotFound", err)
	}
}
