// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// PlasticType identifies one of the material classes the classifier can output.
type PlasticType string

// Known plastic types.
const (
	TypePET   PlasticType = "PET"
	TypeHDPE  PlasticType = "HDPE"
	TypeOther PlasticType = "OTHER"
)

// AllTypes returns the plastic types in canonical order. The order is
// load-bearing: probability vectors and accepted-type annotations follow it.
func AllTypes() []PlasticType {
	return []PlasticType{TypePET, TypeHDPE, TypeOther}
}

// ParsePlasticType converts a free-form string into a PlasticType.
// Matching is case-insensitive.
func ParsePlasticType(s string) (PlasticType, error) {
	switch PlasticType(strings.ToUpper(strings.TrimSpace(s))) {
	case TypePET:
		return TypePET, nil
	case TypeHDPE:
		return TypeHDPE, nil
	case TypeOther:
		return TypeOther, nil
	default:
		return "", fmt.Errorf("unknown plastic type: %q", s)
	}
}

// Valid reports whether t is one of the known plastic types.
func (t PlasticType) Valid() bool {
	switch t {
	case TypePET, TypeHDPE, TypeOther:
		return true
	default:
		return false
	}
}
