package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults collects the fallback values applied when building payloads for
// external integrations. Keeping them in one struct makes the defaulting
// policy auditable instead of scattering literals across call sites.
type Defaults struct {
	Shipping ShippingDefaults `yaml:"shipping"`
	Package  PackageDefaults  `yaml:"package"`
}

// ShippingDefaults fills carrier required fields when the order's address
// leaves them blank.
type ShippingDefaults struct {
	CustomerName   string `yaml:"customer_name"`
	AddressLine    string `yaml:"address_line"`
	City           string `yaml:"city"`
	State          string `yaml:"state"`
	Country        string `yaml:"country"`
	PinCode        string `yaml:"pincode"`
	Phone          string `yaml:"phone"`
	Email          string `yaml:"email"`
	PickupLocation string `yaml:"pickup_location"`
}

// PackageDefaults fills package dimensions and weight when unspecified.
// Dimensions are centimetres; weight is kilograms.
type PackageDefaults struct {
	LengthCM  int     `yaml:"length_cm"`
	BreadthCM int     `yaml:"breadth_cm"`
	HeightCM  int     `yaml:"height_cm"`
	WeightKG  float64 `yaml:"weight_kg"`
}

func builtinDefaults() Defaults {
	return Defaults{
		Shipping: ShippingDefaults{
			CustomerName:   "Customer",
			AddressLine:    "123 Test Street",
			City:           "Mumbai",
			State:          "Maharashtra",
			Country:        "India",
			PinCode:        "400001",
			Phone:          "9324554499",
			Email:          "customer@example.com",
			PickupLocation: "Home",
		},
		Package: PackageDefaults{
			LengthCM:  10,
			BreadthCM: 10,
			HeightCM:  10,
			WeightKG:  0.5,
		},
	}
}

// LoadDefaults returns the built-in defaults, overlaid with values from the
// given YAML file when a path is provided.
func LoadDefaults(path string) (Defaults, error) {
	defaults := builtinDefaults()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("failed to read integration defaults file: %w", err)
	}
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return defaults, fmt.Errorf("failed to parse integration defaults file: %w", err)
	}
	return defaults, nil
}
