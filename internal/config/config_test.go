package config

import "testing"

func TestDefaultValidates(t *testing.T) {
	cfg := Default(1, 100, 100)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidateRejectsNonPositiveDimensions(t *testing.T) {
	cfg := Default(1, 0, 100)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for zero width")
	}
	cfg = Default(1, 100, -5)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for negative height")
	}
}

func TestValidateRejectsOutOfRangeSeed(t *testing.T) {
	cfg := Default(-1, 100, 100)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a negative seed")
	}
	cfg = Default(1<<40, 100, 100)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a seed beyond 32 bits")
	}
}

func TestValidateRejectsInvertedCityBounds(t *testing.T) {
	cfg := Default(1, 100, 100)
	cfg.MinCities = 10
	cfg.MaxCities = 5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error when MaxCities < MinCities")
	}
}

func TestValidateRejectsOutOfRangeShares(t *testing.T) {
	cfg := Default(1, 100, 100)
	cfg.CityShare = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for CityShare > 1")
	}

	cfg = Default(1, 100, 100)
	cfg.MinScoreForCity = -0.1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for negative MinScoreForCity")
	}
}
