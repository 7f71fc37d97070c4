package healthstore

import (
	"errors"
	"fmt"
	"strings"

	"fitprofile/internal/models"
)

var ErrUnsupportedUnit = errors.New("unsupported unit")

const (
	metersPerInch   = 0.0254
	metersPerFoot   = 0.3048
	kilogramsPerLb  = 0.45359237
	kilogramsPerStn = 6.35029318
)

// ToCanonical converts value in unit to the storage unit of sampleType
// (meters for height, kilograms for body mass). An empty unit means canonical.
func ToCanonical(sampleType models.SampleType, value float64, unit string) (float64, error) {
	unit = strings.ToLower(strings.TrimSpace(unit))
	switch sampleType {
	case models.SampleTypeHeight:
		switch unit {
		case "", "m":
			return value, nil
		case "cm":
			return value / 100, nil
		case "in":
			return value * metersPerInch, nil
		case "ft":
			return value * metersPerFoot, nil
		}
	case models.SampleTypeBodyMass:
		switch unit {
		case "", "kg":
			return value, nil
		case "g":
			return value / 1000, nil
		case "lb":
			return value * kilogramsPerLb, nil
		case "st":
			return value * kilogramsPerStn, nil
		}
	default:
		return 0, fmt.Errorf("%w: %s has no units", ErrUnsupportedUnit, sampleType)
	}
	return 0, fmt.Errorf("%w: %q for %s", ErrUnsupportedUnit, unit, sampleType)
}

func MetersToFeetInches(m float64) (feet, inches int) {
	total := int(m/metersPerInch + 0.5)
	return total / 12, total % 12
}

func KilogramsToPounds(kg float64) float64 {
	return kg / kilogramsPerLb
}
