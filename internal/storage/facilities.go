package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"

	"github.com/smartsort-ai/plasticnet/internal/geo"
	"github.com/smartsort-ai/plasticnet/internal/model"
)

// RegisterFacility inserts a new facility record and returns its freshly
// assigned identifier. There is no uniqueness constraint on name or
// coordinates; duplicate registration is permitted.
func (s *SQLiteStorage) RegisterFacility(ctx context.Context, facility *model.Facility) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateFacility(facility); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO facilities
			(name, latitude, longitude, address, accepts_pet, accepts_hdpe, accepts_other, phone, hours, website)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		facility.Name,
		facility.Latitude,
		facility.Longitude,
		facility.Address,
		facility.AcceptsPET,
		facility.AcceptsHDPE,
		facility.AcceptsOther,
		nullableString(facility.Phone),
		nullableString(facility.Hours),
		nullableString(facility.Website),
	)
	if err != nil {
		return 0, persistenceErr("register facility", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, persistenceErr("get facility id", err)
	}

	slog.Debug("registered facility", "id", id, "name", facility.Name)
	return id, nil
}

// GetNearbyFacilities returns every facility accepting plasticType (all
// facilities when plasticType is nil) within radiusKM of the origin,
// annotated with computed distance and accepted types. Results are sorted
// ascending by distance; exact ties are broken by ascending facility ID so
// the order is deterministic.
func (s *SQLiteStorage) GetNearbyFacilities(ctx context.Context, latitude, longitude float64, plasticType *model.PlasticType, radiusKM float64) ([]model.FacilityMatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, latitude, longitude, address,
		       accepts_pet, accepts_hdpe, accepts_other,
		       phone, hours, website, created_at
		FROM facilities`

	switch {
	case plasticType == nil:
		// no filter
	case *plasticType == model.TypePET:
		query += ` WHERE accepts_pet = 1`
	case *plasticType == model.TypeHDPE:
		query += ` WHERE accepts_hdpe = 1`
	case *plasticType == model.TypeOther:
		query += ` WHERE accepts_other = 1`
	default:
		return nil, validateClassification(*plasticType, 0)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, persistenceErr("query facilities", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []model.FacilityMatch
	for rows.Next() {
		facility, scanErr := scanFacility(rows)
		if scanErr != nil {
			return nil, persistenceErr("scan facility", scanErr)
		}

		distance := geo.Distance(latitude, longitude, facility.Latitude, facility.Longitude)
		if distance > radiusKM {
			continue
		}

		matches = append(matches, model.FacilityMatch{
			Facility:      facility,
			DistanceKM:    distance,
			AcceptedTypes: facility.AcceptedTypes(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterate facilities", err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].DistanceKM != matches[j].DistanceKM {
			return matches[i].DistanceKM < matches[j].DistanceKM
		}
		return matches[i].ID < matches[j].ID
	})

	return matches, nil
}

func scanFacility(rows *sql.Rows) (model.Facility, error) {
	var facility model.Facility
	var phone, hours, website sql.NullString

	err := rows.Scan(
		&facility.ID,
		&facility.Name,
		&facility.Latitude,
		&facility.Longitude,
		&facility.Address,
		&facility.AcceptsPET,
		&facility.AcceptsHDPE,
		&facility.AcceptsOther,
		&phone,
		&hours,
		&website,
		&facility.CreatedAt,
	)
	if err != nil {
		return model.Facility{}, err
	}

	facility.Phone = phone.String
	facility.Hours = hours.String
	facility.Website = website.String
	return facility, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
