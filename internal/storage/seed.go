package storage

import (
	"context"
	"log/slog"

	"github.com/smartsort-ai/plasticnet/internal/model"
)

// seedFacilities is the fixed sample set inserted at first initialization.
var seedFacilities = []model.Facility{
	{
		Name:        "EcoRecycle Center",
		Latitude:    12.9716,
		Longitude:   77.5946,
		Address:     "MG Road, Bengaluru, Karnataka 560001",
		AcceptsPET:  true,
		AcceptsHDPE: true,
		Phone:       "+91-80-12345678",
		Hours:       "Mon-Sat: 9 AM - 6 PM",
		Website:     "https://ecorecycle.example.com",
	},
	{
		Name:         "Green Earth Recycling",
		Latitude:     12.9352,
		Longitude:    77.6245,
		Address:      "Indiranagar, Bengaluru, Karnataka 560038",
		AcceptsPET:   true,
		AcceptsHDPE:  true,
		AcceptsOther: true,
		Phone:        "+91-80-98765432",
		Hours:        "Mon-Sun: 8 AM - 8 PM",
		Website:      "https://greenearth.example.com",
	},
	{
		Name:       "City Waste Management",
		Latitude:   12.9160,
		Longitude:  77.6101,
		Address:    "Koramangala, Bengaluru, Karnataka 560034",
		AcceptsPET: true,
		Phone:      "+91-80-55555555",
		Hours:      "Mon-Fri: 10 AM - 5 PM",
	},
}

// EnsureSeedFacilities inserts the sample facilities when the facility
// table is empty. It is a no-op on every run after the first.
func (s *SQLiteStorage) EnsureSeedFacilities(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM facilities`).Scan(&count)
	if err != nil {
		return persistenceErr("count facilities", err)
	}
	if count > 0 {
		return nil
	}

	for i := range seedFacilities {
		facility := seedFacilities[i]
		if _, err := s.RegisterFacility(ctx, &facility); err != nil {
			return err
		}
	}

	slog.Info("Seeded sample recycling facilities", "count", len(seedFacilities))
	return nil
}
