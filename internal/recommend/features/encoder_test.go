// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package features

import (
	"errors"
	"testing"
)

func testVocabulary(t *testing.T) *Vocabulary {
	t.Helper()
	v, err := NewVocabulary(Definition{
		Regions:   []string{"Punjab", "Kerala", "Rajasthan", "Bihar"},
		SoilTypes: []string{"Alluvial", "Sandy", "Black"},
		Crops:     []string{"Wheat", "Rice", "Cotton"},
	})
	if err != nil {
		t.Fatalf("NewVocabulary() error = %v", err)
	}
	return v
}

func TestNewVocabulary_SortsCategories(t *testing.T) {
	t.Parallel()

	v := testVocabulary(t)

	wantRegions := []string{"Bihar", "Kerala", "Punjab", "Rajasthan"}
	got := v.Regions()
	for i := range wantRegions {
		if got[i] != wantRegions[i] {
			t.Fatalf("Regions() = %v, want %v", got, wantRegions)
		}
	}

	wantZones := []string{"Arid", "Humid", "Semi-Arid", "Tropical"}
	zones := v.ClimateZones()
	if len(zones) != len(wantZones) {
		t.Fatalf("ClimateZones() = %v, want %v", zones, wantZones)
	}
	for i := range wantZones {
		if zones[i] != wantZones[i] {
			t.Errorf("ClimateZones()[%d] = %q, want %q", i, zones[i], wantZones[i])
		}
	}

	if w := v.CropFeatureWidth(); w != 4+3+4+1 {
		t.Errorf("CropFeatureWidth() = %d, want 12", w)
	}
	if w := v.AgronomicFeatureWidth(); w != 4+3+3 {
		t.Errorf("AgronomicFeatureWidth() = %d, want 10", w)
	}
}

func TestNewVocabulary_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		def  Definition
	}{
		{"no regions", Definition{SoilTypes: []string{"Red"}, Crops: []string{"Rice"}}},
		{"no soils", Definition{Regions: []string{"Bihar"}, Crops: []string{"Rice"}}},
		{"no crops", Definition{Regions: []string{"Bihar"}, SoilTypes: []string{"Red"}}},
		{"duplicate crop", Definition{Regions: []string{"Bihar"}, SoilTypes: []string{"Red"}, Crops: []string{"Rice", "Rice"}}},
		{"empty region", Definition{Regions: []string{""}, SoilTypes: []string{"Red"}, Crops: []string{"Rice"}}},
		{
			"empty climate zone",
			Definition{
				Regions: []string{"Bihar"}, SoilTypes: []string{"Red"}, Crops: []string{"Rice"},
				RegionClimate: map[string]string{"Bihar": ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewVocabulary(tt.def)
			if !errors.Is(err, ErrInvalidVocabulary) {
				t.Errorf("NewVocabulary() error = %v, want ErrInvalidVocabulary", err)
			}
		})
	}
}

func TestVocabulary_EngineeredDefaults(t *testing.T) {
	t.Parallel()

	fertility := 2.5
	v, err := NewVocabulary(Definition{
		Regions:              []string{"Punjab", "Atlantis"},
		SoilTypes:            []string{"Alluvial", "Mud"},
		Crops:                []string{"Rice"},
		DefaultSoilFertility: &fertility,
	})
	if err != nil {
		t.Fatalf("NewVocabulary() error = %v", err)
	}

	if got := v.ClimateZone("Punjab"); got != "Semi-Arid" {
		t.Errorf("ClimateZone(Punjab) = %q, want Semi-Arid", got)
	}
	if got := v.ClimateZone("Atlantis"); got != DefaultClimateZone {
		t.Errorf("ClimateZone(Atlantis) = %q, want %q", got, DefaultClimateZone)
	}
	if got := v.SoilFertility("Alluvial"); got != 5 {
		t.Errorf("SoilFertility(Alluvial) = %v, want 5", got)
	}
	if got := v.SoilFertility("Mud"); got != 2.5 {
		t.Errorf("SoilFertility(Mud) = %v, want 2.5", got)
	}
}

func TestEncoder_EncodeCrop(t *testing.T) {
	t.Parallel()

	enc := NewEncoder(testVocabulary(t))

	got, err := enc.EncodeCrop(Input{Region: "Punjab", SoilType: "Alluvial"})
	if err != nil {
		t.Fatalf("EncodeCrop() error = %v", err)
	}

	// regions: Bihar Kerala Punjab Rajasthan | soils: Alluvial Black Sandy |
	// zones: Arid Humid Semi-Arid Tropical | fertility
	want := []float64{0, 0, 1, 0, 1, 0, 0, 0, 0, 1, 0, 5}
	if len(got) != len(want) {
		t.Fatalf("EncodeCrop() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EncodeCrop()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEncoder_EncodeAgronomic(t *testing.T) {
	t.Parallel()

	enc := NewEncoder(testVocabulary(t))

	got, err := enc.EncodeAgronomic(Input{Region: "Kerala", SoilType: "Sandy"}, "Rice")
	if err != nil {
		t.Fatalf("EncodeAgronomic() error = %v", err)
	}

	// regions | soils | crops: Cotton Rice Wheat
	want := []float64{0, 1, 0, 0, 0, 0, 1, 0, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EncodeAgronomic()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestVocabulary_CropIndex(t *testing.T) {
	t.Parallel()

	v := testVocabulary(t)
	for want, crop := range v.Crops() {
		if got, ok := v.CropIndex(crop); !ok || got != want {
			t.Errorf("CropIndex(%q) = %d, %v; want %d, true", crop, got, ok, want)
		}
	}
	if _, ok := v.CropIndex("Saffron"); ok {
		t.Error("CropIndex(Saffron) should report unknown")
	}
}

func TestEncoder_UnknownCategory(t *testing.T) {
	t.Parallel()

	enc := NewEncoder(testVocabulary(t))

	tests := []struct {
		name      string
		in        Input
		crop      string
		wantField string
		wantValue string
	}{
		{"unknown region", Input{Region: "Atlantis", SoilType: "Alluvial"}, "Rice", FieldRegion, "Atlantis"},
		{"unknown soil", Input{Region: "Punjab", SoilType: "Moon Dust"}, "Rice", FieldSoilType, "Moon Dust"},
		{"region checked first", Input{Region: "", SoilType: ""}, "Rice", FieldRegion, ""},
		{"unknown crop", Input{Region: "Punjab", SoilType: "Alluvial"}, "Quinoa", FieldCrop, "Quinoa"},
		{"case sensitive", Input{Region: "punjab", SoilType: "Alluvial"}, "Rice", FieldRegion, "punjab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := enc.EncodeAgronomic(tt.in, tt.crop)
			if !errors.Is(err, ErrUnknownCategory) {
				t.Fatalf("EncodeAgronomic() error = %v, want ErrUnknownCategory", err)
			}
			var uc *UnknownCategoryError
			if !errors.As(err, &uc) {
				t.Fatalf("error %T is not *UnknownCategoryError", err)
			}
			if uc.Field != tt.wantField || uc.Value != tt.wantValue {
				t.Errorf("got field=%q value=%q, want field=%q value=%q", uc.Field, uc.Value, tt.wantField, tt.wantValue)
			}

			if tt.wantField != FieldCrop {
				if _, err := enc.EncodeCrop(tt.in); !errors.Is(err, ErrUnknownCategory) {
					t.Errorf("EncodeCrop() error = %v, want ErrUnknownCategory", err)
				}
			}
		})
	}
}

func TestEncoder_Pure(t *testing.T) {
	t.Parallel()

	enc := NewEncoder(testVocabulary(t))
	in := Input{Region: "Rajasthan", SoilType: "Black"}

	first, err := enc.EncodeCrop(in)
	if err != nil {
		t.Fatalf("EncodeCrop() error = %v", err)
	}
	first[0] = 42

	second, err := enc.EncodeCrop(in)
	if err != nil {
		t.Fatalf("EncodeCrop() error = %v", err)
	}
	if second[0] != 0 {
		t.Errorf("EncodeCrop() returned shared state: second[0] = %v", second[0])
	}
}
