package storage

import (
	"context"
	"strings"

	"github.com/smartsort-ai/plasticnet/internal/common"
	"github.com/smartsort-ai/plasticnet/internal/model"
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return common.Ef(common.KindValidation, "context cannot be nil")
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return common.Ef(common.KindValidation, "%s cannot be empty", paramName)
	}
	return nil
}

// validateFacility validates a facility before registration. Duplicate
// names or coordinates are allowed; only structural problems are rejected.
func validateFacility(facility *model.Facility) error {
	if facility == nil {
		return common.Ef(common.KindValidation, "facility cannot be nil")
	}
	if strings.TrimSpace(facility.Name) == "" {
		return common.Ef(common.KindValidation, "facility missing name")
	}
	if strings.TrimSpace(facility.Address) == "" {
		return common.Ef(common.KindValidation, "facility missing address")
	}
	if facility.Latitude < -90 || facility.Latitude > 90 {
		return common.Ef(common.KindValidation, "facility latitude %v out of range [-90,90]", facility.Latitude)
	}
	if facility.Longitude < -180 || facility.Longitude > 180 {
		return common.Ef(common.KindValidation, "facility longitude %v out of range [-180,180]", facility.Longitude)
	}
	return nil
}

// validateClassification validates a ledger write at the boundary. Invalid
// input fails rather than being silently coerced.
func validateClassification(plasticType model.PlasticType, confidence float64) error {
	if !plasticType.Valid() {
		return common.Ef(common.KindValidation, "unknown plastic type: %q", string(plasticType))
	}
	if confidence < 0 || confidence > 1 {
		return common.Ef(common.KindValidation, "confidence must be between 0 and 1, got %v", confidence)
	}
	return nil
}

// validateFeedback validates a feedback record.
func validateFeedback(feedback *model.Feedback) error {
	if feedback == nil {
		return common.Ef(common.KindValidation, "feedback cannot be nil")
	}
	if feedback.ClassificationID <= 0 {
		return common.Ef(common.KindValidation, "feedback missing classification id")
	}
	if feedback.ActualType != "" && !feedback.ActualType.Valid() {
		return common.Ef(common.KindValidation, "unknown plastic type: %q", string(feedback.ActualType))
	}
	return nil
}
