package domain

import "time"

// DeviceType is the computation device a model is expected to run on.
// Values are persisted as-is, so changing them requires a data migration.
type DeviceType string

const (
	DeviceCPU  DeviceType = "cpu"
	DeviceCUDA DeviceType = "cuda"
)

// Valid reports whether d is one of the known device values.
func (d DeviceType) Valid() bool {
	return d == DeviceCPU || d == DeviceCUDA
}

// MLModel is a registered machine learning model.
// Name is the immutable business identifier; renaming a model is modeled as
// delete plus create, never update.
type MLModel struct {
	ID        int64      `json:"id,string" gorm:"primaryKey;autoIncrement"`       // Primary key ID
	Name      string     `json:"name" gorm:"size:32;not null;uniqueIndex"`        // Unique model name (e.g. stub_model_v1)
	Device    DeviceType `json:"device" gorm:"type:varchar(8);not null;check:device IN ('cpu','cuda')"` // Inference device: cpu, cuda
	Metrics   []MLMetric `json:"-" gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (MLModel) TableName() string {
	return "ml_models"
}
