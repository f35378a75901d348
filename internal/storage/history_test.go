package storage

import (
	"context"
	"testing"

	"github.com/smartsort-ai/plasticnet/internal/common"
	"github.com/smartsort-ai/plasticnet/internal/model"
)

func TestAppendClassification(t *testing.T) {
	tests := []struct {
		name        string
		plasticType model.PlasticType
		confidence  float64
		imageName   string
		wantErr     bool
	}{
		{name: "valid entry", plasticType: model.TypePET, confidence: 0.95, imageName: "bottle1.jpg"},
		{name: "no image name", plasticType: model.TypeHDPE, confidence: 0.5},
		{name: "confidence zero", plasticType: model.TypeOther, confidence: 0},
		{name: "confidence one", plasticType: model.TypePET, confidence: 1},
		{name: "confidence above one", plasticType: model.TypePET, confidence: 1.01, wantErr: true},
		{name: "negative confidence", plasticType: model.TypePET, confidence: -0.1, wantErr: true},
		{name: "unknown type", plasticType: model.PlasticType("PVC"), confidence: 0.5, wantErr: true},
		{name: "empty type", plasticType: model.PlasticType(""), confidence: 0.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()

			id, err := store.AppendClassification(context.Background(), tt.plasticType, tt.confidence, tt.imageName)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if kind := common.KindOf(err); kind != common.KindValidation {
					t.Errorf("error kind = %s, want %s", kind, common.KindValidation)
				}
				return
			}
			if err != nil {
				t.Fatalf("append failed: %v", err)
			}
			if id <= 0 {
				t.Errorf("expected positive id, got %d", id)
			}
		})
	}
}

func TestAppendIDsMonotonic(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	var lastID int64
	for i := 0; i < 5; i++ {
		id, err := store.AppendClassification(ctx, model.TypePET, 0.8, "")
		if err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
		if id <= lastID {
			t.Errorf("id %d not greater than previous %d", id, lastID)
		}
		lastID = id
	}
}

func TestGetHistoryNewestFirst(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	appended := []struct {
		plasticType model.PlasticType
		confidence  float64
		imageName   string
	}{
		{model.TypePET, 0.91, "a.jpg"},
		{model.TypeHDPE, 0.72, "b.jpg"},
		{model.TypeOther, 0.55, "c.jpg"},
	}
	for _, entry := range appended {
		if _, err := store.AppendClassification(ctx, entry.plasticType, entry.confidence, entry.imageName); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	// Newest entry comes back first.
	entries, err := store.GetHistory(ctx, 1, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].PlasticType != model.TypeOther || entries[0].ImageName != "c.jpg" {
		t.Errorf("newest entry = %+v, want the last appended", entries[0])
	}

	// Full listing is newest-first.
	entries, err = store.GetHistory(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].ID > entries[i-1].ID {
			t.Errorf("entries not newest-first: id %d after %d", entries[i].ID, entries[i-1].ID)
		}
	}

	// Offset skips the newest.
	entries, err = store.GetHistory(ctx, 10, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ImageName != "b.jpg" {
		t.Errorf("offset listing wrong: %+v", entries)
	}
}

func TestDeleteHistoryEntry(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id, err := store.AppendClassification(ctx, model.TypePET, 0.9, "x.jpg")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	existed, err := store.DeleteHistoryEntry(ctx, id)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !existed {
		t.Error("expected delete to report the entry existed")
	}

	existed, err = store.DeleteHistoryEntry(ctx, id)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if existed {
		t.Error("expected delete of missing entry to report false")
	}

	entries, err := store.GetHistory(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history after delete, got %d entries", len(entries))
	}
}

func TestSaveFeedback(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	classificationID, err := store.AppendClassification(ctx, model.TypePET, 0.9, "y.jpg")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	id, err := store.SaveFeedback(ctx, &model.Feedback{
		ClassificationID: classificationID,
		Correct:          false,
		ActualType:       model.TypeHDPE,
		Comments:         "was a milk jug",
	})
	if err != nil {
		t.Fatalf("save feedback failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive feedback id, got %d", id)
	}

	if _, err := store.SaveFeedback(ctx, &model.Feedback{ClassificationID: 0}); err == nil {
		t.Error("expected validation error for missing classification id")
	}
	if _, err := store.SaveFeedback(ctx, &model.Feedback{ClassificationID: 1, ActualType: "PVC"}); err == nil {
		t.Error("expected validation error for unknown actual type")
	}
}
