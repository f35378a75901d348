package storage

import (
	"context"
	"database/sql"

	"github.com/smartsort-ai/plasticnet/internal/model"
)

// GetStatistics returns aggregate counts over the classification history
// and the facility table: total entries, counts grouped by plastic type,
// mean confidence (0.0 when the history is empty), total registered
// facilities, and entries created within the trailing 24 hours.
func (s *SQLiteStorage) GetStatistics(ctx context.Context) (*model.Statistics, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	stats := &model.Statistics{ByType: make(map[model.PlasticType]int64)}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM classification_history`,
	).Scan(&stats.TotalClassifications)
	if err != nil {
		return nil, persistenceErr("count classifications", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT plastic_type, COUNT(*)
		FROM classification_history
		GROUP BY plastic_type
	`)
	if err != nil {
		return nil, persistenceErr("count classifications by type", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var plasticType string
		var count int64
		if err := rows.Scan(&plasticType, &count); err != nil {
			return nil, persistenceErr("scan type count", err)
		}
		stats.ByType[model.PlasticType(plasticType)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterate type counts", err)
	}

	var avgConfidence sql.NullFloat64
	err = s.db.QueryRowContext(ctx,
		`SELECT AVG(confidence) FROM classification_history`,
	).Scan(&avgConfidence)
	if err != nil {
		return nil, persistenceErr("average confidence", err)
	}
	if avgConfidence.Valid {
		stats.AverageConfidence = avgConfidence.Float64
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM facilities`,
	).Scan(&stats.TotalFacilities)
	if err != nil {
		return nil, persistenceErr("count facilities", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM classification_history
		WHERE timestamp >= datetime('now', '-1 day')
	`).Scan(&stats.RecentActivity24h)
	if err != nil {
		return nil, persistenceErr("count recent activity", err)
	}

	return stats, nil
}
