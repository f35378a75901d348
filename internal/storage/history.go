package storage

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/smartsort-ai/plasticnet/internal/model"
)

// Default pagination window for history listing.
const defaultHistoryLimit = 50

// AppendClassification records one classification outcome in the
// append-only history and returns its identifier. Identifiers are
// monotonically increasing; the timestamp is assigned server-side.
func (s *SQLiteStorage) AppendClassification(ctx context.Context, plasticType model.PlasticType, confidence float64, imageName string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateClassification(plasticType, confidence); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO classification_history (plastic_type, confidence, image_name)
		VALUES (?, ?, ?)
	`, string(plasticType), confidence, nullableString(imageName))
	if err != nil {
		return 0, persistenceErr("append classification", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, persistenceErr("get classification id", err)
	}

	slog.Debug("appended classification",
		"id", id,
		"plastic_type", plasticType,
		"confidence", confidence)
	return id, nil
}

// GetHistory returns history entries newest-first. A non-positive limit
// falls back to the default window; a negative offset is treated as zero.
func (s *SQLiteStorage) GetHistory(ctx context.Context, limit, offset int) ([]model.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	// Timestamps have second precision, so the id is the tie-break that
	// keeps same-second entries in true insertion order.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plastic_type, confidence, image_name, timestamp
		FROM classification_history
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, persistenceErr("query history", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.HistoryEntry
	for rows.Next() {
		entry, scanErr := scanHistoryEntry(rows)
		if scanErr != nil {
			return nil, persistenceErr("scan history entry", scanErr)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterate history", err)
	}

	return entries, nil
}

// DeleteHistoryEntry removes one entry by identifier and reports whether
// it existed. Entries are never updated in place; deletion is the only
// mutation the ledger supports.
func (s *SQLiteStorage) DeleteHistoryEntry(ctx context.Context, id int64) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM classification_history WHERE id = ?`, id)
	if err != nil {
		return false, persistenceErr("delete history entry", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, persistenceErr("count deleted rows", err)
	}

	return affected > 0, nil
}

func scanHistoryEntry(rows *sql.Rows) (model.HistoryEntry, error) {
	var entry model.HistoryEntry
	var plasticType string
	var imageName sql.NullString

	if err := rows.Scan(&entry.ID, &plasticType, &entry.Confidence, &imageName, &entry.Timestamp); err != nil {
		return model.HistoryEntry{}, err
	}

	entry.PlasticType = model.PlasticType(plasticType)
	entry.ImageName = imageName.String
	return entry, nil
}
