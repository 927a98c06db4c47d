package rng

import "testing"

func TestMixReferenceVectors(t *testing.T) {
	tests := []struct {
		name   string
		legacy bool
		values []float64
		want   int32
	}{
		{"modern three values", false, []float64{5, 0, 6}, -1445079476},
		{"legacy three values", true, []float64{5, 0, 6}, 11},
		{"modern single value", false, []float64{1}, -1198898341},
		{"legacy single value", true, []float64{1}, 1},
		{"modern floor seed", false, []float64{15, 4 * 5152, 3}, -1607955675},
		{"legacy floor seed", true, []float64{12, 4 * 5152, 3}, 20623},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mix(tt.legacy, tt.values...); got != tt.want {
				t.Errorf("Mix(%v, %v) = %d, want %d", tt.legacy, tt.values, got, tt.want)
			}
		})
	}
}

func TestMixModesDifferButAreDeterministic(t *testing.T) {
	vals := []float64{140, 25760, 617283}
	modern := Mix(false, vals...)
	legacy := Mix(true, vals...)
	if modern == legacy {
		t.Fatalf("modern and legacy mixing agree (%d); expected different seeds", modern)
	}
	for i := 0; i < 10; i++ {
		if got := Mix(false, vals...); got != modern {
			t.Fatalf("modern mix not deterministic: %d vs %d", got, modern)
		}
		if got := Mix(true, vals...); got != legacy {
			t.Fatalf("legacy mix not deterministic: %d vs %d", got, legacy)
		}
	}
}

func TestMixZeroPadsMissingSlots(t *testing.T) {
	if Mix(false, 7) != Mix(false, 7, 0, 0, 0, 0) {
		t.Fatal("missing values must hash as zero slots")
	}
}

func TestMixLegacySaturates(t *testing.T) {
	// two values just under the modulus overflow int32 when summed
	if got := Mix(true, 2147483646, 2147483646); got != 2147483647 {
		t.Fatalf("legacy mix should saturate, got %d", got)
	}
}

func TestMixPanicsOnTooManyValues(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for six values")
		}
	}()
	Mix(false, 1, 2, 3, 4, 5, 6)
}
