package profile

import (
	"errors"
	"math"
)

var (
	// ErrDivisionUndefined is returned when height is zero, negative or not finite.
	ErrDivisionUndefined = errors.New("bmi undefined for non-positive height")
	ErrInvalidWeight     = errors.New("weight must be a finite non-negative number")
)

// ComputeBMI returns weight / height². Height is in meters, weight in kilograms.
func ComputeBMI(heightM, weightKg float64) (float64, error) {
	if !(heightM > 0) || math.IsInf(heightM, 0) {
		return 0, ErrDivisionUndefined
	}
	if !(weightKg >= 0) || math.IsInf(weightKg, 0) {
		return 0, ErrInvalidWeight
	}
	return weightKg / (heightM * heightM), nil
}

type BMICategory string

const (
	CategoryUnderweight BMICategory = "Underweight"
	CategoryNormal      BMICategory = "Normal"
	CategoryOverweight  BMICategory = "Overweight"
	CategoryObese       BMICategory = "Obese"
)

// Category uses the WHO adult cut-offs.
func Category(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}
