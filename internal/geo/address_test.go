package geo

import "testing"

func strPtr(s string) *string { return &s }

func TestParseCityState(t *testing.T) {
	cases := []struct {
		name     string
		address  string
		wantCity string
		wantSt   string
		wantOK   bool
	}{
		{"trailing city state", "123 Main St, Springfield, IL", "Springfield", "IL", true},
		{"state with zip", "456 Route 66, Amarillo, TX 79124", "Amarillo", "TX", true},
		{"lowercase state", "9 Elm Ave, portland, or", "portland", "OR", true},
		{"state only", "TX", "", "TX", true},
		{"no state token", "somewhere on the prairie", "", "", false},
		{"numeric token ignored", "12 Somewhere Road, 99", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			city, state, ok := ParseCityState(tc.address)
			if ok != tc.wantOK || city != tc.wantCity || state != tc.wantSt {
				t.Fatalf("ParseCityState(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tc.address, city, state, ok, tc.wantCity, tc.wantSt, tc.wantOK)
			}
		})
	}
}

func TestResolveCityState_StoredValuesWin(t *testing.T) {
	city, state := ResolveCityState(strPtr("Austin"), strPtr("TX"), strPtr("whatever, Springfield, IL"))
	if city == nil || *city != "Austin" || state == nil || *state != "TX" {
		t.Fatalf("stored values must win, got city=%v state=%v", city, state)
	}
}

func TestResolveCityState_SentinelStateFallsBack(t *testing.T) {
	city, state := ResolveCityState(nil, strPtr("US"), strPtr("123 Main St, Springfield, IL"))
	if city == nil || *city != "Springfield" {
		t.Fatalf("expected parsed city Springfield, got %v", city)
	}
	if state == nil || *state != "IL" {
		t.Fatalf("expected parsed state IL, got %v", state)
	}
}

func TestResolveCityState_FillsOnlyMissing(t *testing.T) {
	city, state := ResolveCityState(strPtr("Tulsa"), nil, strPtr("11 N Yale Ave, Catoosa, OK"))
	if city == nil || *city != "Tulsa" {
		t.Fatalf("stored city must be kept, got %v", city)
	}
	if state == nil || *state != "OK" {
		t.Fatalf("expected parsed state OK, got %v", state)
	}
}

func TestResolveCityState_NoAddress(t *testing.T) {
	city, state := ResolveCityState(nil, nil, nil)
	if city != nil || state != nil {
		t.Fatalf("expected nil city/state, got %v %v", city, state)
	}
}
