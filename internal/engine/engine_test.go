package engine

import (
	"context"
	"testing"

	"github.com/smartsort-ai/plasticnet/internal/common"
	"github.com/smartsort-ai/plasticnet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClassifier returns a scripted prediction or error and records what
// it was asked to classify.
type mockClassifier struct {
	prediction *model.Prediction
	err        error
	predicted  [][]byte
}

func (m *mockClassifier) Load(context.Context) error { return nil }

func (m *mockClassifier) Predict(imageData []byte) (*model.Prediction, error) {
	m.predicted = append(m.predicted, imageData)
	if m.err != nil {
		return nil, m.err
	}
	return m.prediction, nil
}

func (m *mockClassifier) PredictFile(string) (*model.Prediction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.prediction, nil
}

// mockStorage records facility queries; its other methods are not
// reachable from the engine.
type mockStorage struct {
	matches []model.FacilityMatch
	err     error

	queryCount  int
	gotLat      float64
	gotLon      float64
	gotType     *model.PlasticType
	gotRadiusKM float64
}

func (m *mockStorage) GetNearbyFacilities(_ context.Context, latitude, longitude float64, plasticType *model.PlasticType, radiusKM float64) ([]model.FacilityMatch, error) {
	m.queryCount++
	m.gotLat, m.gotLon = latitude, longitude
	m.gotType = plasticType
	m.gotRadiusKM = radiusKM
	if m.err != nil {
		return nil, m.err
	}
	return m.matches, nil
}

func (m *mockStorage) RegisterFacility(context.Context, *model.Facility) (int64, error) {
	return 0, nil
}

func (m *mockStorage) AppendClassification(context.Context, model.PlasticType, float64, string) (int64, error) {
	return 0, nil
}

func (m *mockStorage) GetHistory(context.Context, int, int) ([]model.HistoryEntry, error) {
	return nil, nil
}

func (m *mockStorage) DeleteHistoryEntry(context.Context, int64) (bool, error) {
	return false, nil
}

func (m *mockStorage) SaveFeedback(context.Context, *model.Feedback) (int64, error) {
	return 0, nil
}

func (m *mockStorage) GetStatistics(context.Context) (*model.Statistics, error) {
	return nil, nil
}

func (m *mockStorage) Migrate(context.Context) error { return nil }
func (m *mockStorage) Close() error                  { return nil }

func petPrediction(confidence float64) *model.Prediction {
	material, _ := model.MaterialFor(model.TypePET)
	return &model.Prediction{
		Type:       model.TypePET,
		Confidence: confidence,
		Probabilities: map[model.PlasticType]float64{
			model.TypePET:   confidence,
			model.TypeHDPE:  (1 - confidence) / 2,
			model.TypeOther: (1 - confidence) / 2,
		},
		Material: material,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestClassifyWithoutLocation(t *testing.T) {
	storage := &mockStorage{}
	classifier := &mockClassifier{prediction: petPrediction(0.92)}
	eng := New(storage, classifier, DefaultConfig())

	result, err := eng.Classify(context.Background(), Request{Image: []byte("img")})
	require.NoError(t, err)

	assert.Equal(t, model.TypePET, result.Prediction.Type)
	assert.Equal(t, model.TierVeryHigh, result.Tier)
	assert.False(t, result.Timestamp.IsZero())
	assert.Nil(t, result.Facilities)
	assert.Equal(t, 0, storage.queryCount, "no location means no facility query")
}

func TestClassifyPartialLocationSkipsLookup(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"latitude only", Request{Image: []byte("img"), Latitude: floatPtr(12.9716)}},
		{"longitude only", Request{Image: []byte("img"), Longitude: floatPtr(77.5946)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &mockStorage{}
			eng := New(storage, &mockClassifier{prediction: petPrediction(0.8)}, DefaultConfig())

			result, err := eng.Classify(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Nil(t, result.Facilities)
			assert.Equal(t, 0, storage.queryCount)
		})
	}
}

func TestClassifyWithLocation(t *testing.T) {
	matches := []model.FacilityMatch{
		{
			Facility:      model.Facility{ID: 1, Name: "EcoRecycle Center"},
			AcceptedTypes: []model.PlasticType{model.TypePET, model.TypeHDPE},
			DistanceKM:    1.2,
		},
	}
	storage := &mockStorage{matches: matches}
	classifier := &mockClassifier{prediction: petPrediction(0.85)}
	eng := New(storage, classifier, DefaultConfig())

	result, err := eng.Classify(context.Background(), Request{
		Image:     []byte("img"),
		Latitude:  floatPtr(12.9716),
		Longitude: floatPtr(77.5946),
		RadiusKM:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, matches, result.Facilities)
	assert.Equal(t, model.TierHigh, result.Tier)
	assert.Equal(t, 1, storage.queryCount)
	assert.Equal(t, 12.9716, storage.gotLat)
	assert.Equal(t, 77.5946, storage.gotLon)
	assert.Equal(t, 5.0, storage.gotRadiusKM)
	require.NotNil(t, storage.gotType)
	assert.Equal(t, model.TypePET, *storage.gotType, "lookup is keyed by the predicted type")
}

func TestClassifyRadiusDefault(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		radiusKM   float64
		wantRadius float64
	}{
		{"zero radius uses engine default", DefaultConfig(), 0, 10.0},
		{"negative radius uses engine default", DefaultConfig(), -3, 10.0},
		{"explicit radius wins", DefaultConfig(), 25, 25.0},
		{"configured default", Config{DefaultRadiusKM: 2.5}, 0, 2.5},
		{"non-positive config falls back", Config{DefaultRadiusKM: -1}, 0, 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &mockStorage{}
			eng := New(storage, &mockClassifier{prediction: petPrediction(0.7)}, tt.cfg)

			_, err := eng.Classify(context.Background(), Request{
				Image:     []byte("img"),
				Latitude:  floatPtr(12.9716),
				Longitude: floatPtr(77.5946),
				RadiusKM:  tt.radiusKM,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantRadius, storage.gotRadiusKM)
		})
	}
}

func TestClassifyPredictionFailure(t *testing.T) {
	storage := &mockStorage{}
	classifier := &mockClassifier{err: common.Ef(common.KindDecode, "unreadable image data")}
	eng := New(storage, classifier, DefaultConfig())

	_, err := eng.Classify(context.Background(), Request{
		Image:     []byte("garbage"),
		Latitude:  floatPtr(12.9716),
		Longitude: floatPtr(77.5946),
	})
	require.Error(t, err)
	assert.Equal(t, common.KindDecode, common.KindOf(err))
	assert.Equal(t, 0, storage.queryCount, "failed prediction must not query facilities")
}

func TestClassifyStorageFailure(t *testing.T) {
	storage := &mockStorage{err: common.Ef(common.KindPersistence, "database locked")}
	classifier := &mockClassifier{prediction: petPrediction(0.9)}
	eng := New(storage, classifier, DefaultConfig())

	_, err := eng.Classify(context.Background(), Request{
		Image:     []byte("img"),
		Latitude:  floatPtr(12.9716),
		Longitude: floatPtr(77.5946),
	})
	require.Error(t, err)
	assert.Equal(t, common.KindPersistence, common.KindOf(err))
}

func TestClassifyTiers(t *testing.T) {
	tests := []struct {
		confidence float64
		want       model.ConfidenceTier
	}{
		{0.95, model.TierVeryHigh},
		{0.80, model.TierHigh},
		{0.65, model.TierModerate},
		{0.45, model.TierLow},
		{0.20, model.TierVeryLow},
	}

	for _, tt := range tests {
		eng := New(&mockStorage{}, &mockClassifier{prediction: petPrediction(tt.confidence)}, DefaultConfig())

		result, err := eng.Classify(context.Background(), Request{Image: []byte("img")})
		require.NoError(t, err)
		assert.Equal(t, tt.want, result.Tier, "confidence %.2f", tt.confidence)
	}
}
