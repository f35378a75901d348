package model

import "time"

// Prediction is the output of one successful inference call. It is created
// per request and never persisted as-is; only a derived summary goes into
// the classification history.
type Prediction struct {
	Probabilities map[PlasticType]float64
	Type          PlasticType
	Material      Material
	Confidence    float64
}

// HistoryEntry is one row of the append-only classification history.
type HistoryEntry struct {
	Timestamp   time.Time
	PlasticType PlasticType
	ImageName   string
	ID          int64
	Confidence  float64
}

// Feedback links a history entry to a user-asserted correct type. Feedback
// is accepted but not consumed by any read path; it exists as an extension
// point.
type Feedback struct {
	Timestamp        time.Time
	ActualType       PlasticType
	Comments         string
	ID               int64
	ClassificationID int64
	Correct          bool
}

// Statistics aggregates counts over the classification history and the
// facility table.
type Statistics struct {
	ByType               map[PlasticType]int64
	TotalClassifications int64
	TotalFacilities      int64
	RecentActivity24h    int64
	AverageConfidence    float64
}
