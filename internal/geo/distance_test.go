package geo

import (
	"math"
	"testing"
)

func TestDistanceMiles_ZeroForSamePoint(t *testing.T) {
	if d := DistanceMiles(39.5, -98.35, 39.5, -98.35); d != 0 {
		t.Fatalf("expected 0 distance for identical coordinates, got %v", d)
	}
}

func TestDistanceMiles_KnownPairs(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		want                   float64
	}{
		// Cadillac Ranch (Amarillo, TX) to the Blue Whale of Catoosa (OK).
		{"amarillo to catoosa", 35.1850, -101.9898, 36.1865, -95.7292, 358.04},
		// One degree of latitude on the meridian.
		{"one degree latitude", 0, 0, 1, 0, 69.09},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DistanceMiles(tc.lat1, tc.lng1, tc.lat2, tc.lng2)
			if relErr := math.Abs(got-tc.want) / tc.want; relErr > 0.01 {
				t.Fatalf("distance %v, want about %v", got, tc.want)
			}
		})
	}
}

func TestDistanceMiles_Symmetric(t *testing.T) {
	a := DistanceMiles(35.1850, -101.9898, 40.7128, -74.0060)
	b := DistanceMiles(40.7128, -74.0060, 35.1850, -101.9898)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", a, b)
	}
}
