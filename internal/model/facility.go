package model

import "time"

// Facility represents a recycling drop-off location.
type Facility struct {
	CreatedAt    time.Time
	Name         string
	Address      string
	Phone        string
	Hours        string
	Website      string
	ID           int64
	Latitude     float64
	Longitude    float64
	AcceptsPET   bool
	AcceptsHDPE  bool
	AcceptsOther bool
}

// Accepts reports whether the facility accepts the given plastic type.
func (f *Facility) Accepts(t PlasticType) bool {
	switch t {
	case TypePET:
		return f.AcceptsPET
	case TypeHDPE:
		return f.AcceptsHDPE
	case TypeOther:
		return f.AcceptsOther
	default:
		return false
	}
}

// AcceptedTypes returns the plastic types the facility accepts, in
// canonical order.
func (f *Facility) AcceptedTypes() []PlasticType {
	var types []PlasticType
	for _, t := range AllTypes() {
		if f.Accepts(t) {
			types = append(types, t)
		}
	}
	return types
}

// FacilityMatch is a facility annotated with its computed distance from a
// query origin and its derived accepted-type list.
type FacilityMatch struct {
	Facility
	AcceptedTypes []PlasticType
	DistanceKM    float64
}
