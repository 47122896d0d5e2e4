package domain

import "time"

// MLMetric is a single named performance metric recorded for an ML model.
// The pair (ModelID, Name) is unique: a metric name may repeat across models
// but never twice for the same model. Deleting the parent model cascades.
type MLMetric struct {
	ID        int64     `json:"id,string" gorm:"primaryKey;autoIncrement"`             // Primary key ID
	ModelID   int64     `json:"model_id,string" gorm:"not null;uniqueIndex:uix_model_metric"` // Parent MLModel ID
	Name      string    `json:"name" gorm:"size:32;not null;uniqueIndex:uix_model_metric"`    // Metric name (e.g. accuracy, f1_score)
	Value     float64   `json:"value" gorm:"not null"`                                 // Metric value, finite
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (MLMetric) TableName() string {
	return "ml_metrics"
}
