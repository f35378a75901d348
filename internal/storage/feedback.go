package storage

import (
	"context"
	"log/slog"

	"github.com/smartsort-ai/plasticnet/internal/model"
)

// SaveFeedback records user feedback for a classification. Feedback is
// write-only: no read path consumes it yet, but the table is kept as an
// extension point for future accuracy tracking.
func (s *SQLiteStorage) SaveFeedback(ctx context.Context, feedback *model.Feedback) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateFeedback(feedback); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (classification_id, correct_prediction, actual_type, comments)
		VALUES (?, ?, ?, ?)
	`,
		feedback.ClassificationID,
		feedback.Correct,
		nullableString(string(feedback.ActualType)),
		nullableString(feedback.Comments),
	)
	if err != nil {
		return 0, persistenceErr("save feedback", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, persistenceErr("get feedback id", err)
	}

	slog.Debug("saved feedback", "id", id, "classification_id", feedback.ClassificationID)
	return id, nil
}
