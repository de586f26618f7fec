package domain

import "time"

// DurationUnit is the unit a stage duration is expressed in
type DurationUnit string

const (
	DurationUnitHours DurationUnit = "HOURS"
	DurationUnitDays  DurationUnit = "DAYS"
	DurationUnitWeeks DurationUnit = "WEEKS"
)

// IsValid reports whether the unit is one of the allowed values
func (u DurationUnit) IsValid() bool {
	switch u {
	case DurationUnitHours, DurationUnitDays, DurationUnitWeeks:
		return true
	}
	return false
}

// StageStatus represents the lifecycle status of a construction stage
type StageStatus string

const (
	StageStatusNew     StageStatus = "NEW"
	StageStatusPlanned StageStatus = "PLANNED"
	StageStatusDeleted StageStatus = "DELETED"
)

// IsValid reports whether the status is one of the allowed values
func (s StageStatus) IsValid() bool {
	switch s {
	case StageStatusNew, StageStatusPlanned, StageStatusDeleted:
		return true
	}
	return false
}

// Stage represents a scheduled construction stage.
// Duration is derived from (StartDate, EndDate, DurationUnit) and is nil
// whenever EndDate is nil. Rows are never removed physically; delete is a
// transition to StageStatusDeleted.
type Stage struct {
	ID           uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	StartDate    time.Time    `gorm:"type:timestamp;not null;index:idx_construction_stages_start_date" json:"start_date"`
	EndDate      *time.Time   `gorm:"type:timestamp" json:"end_date"`
	Duration     *float64     `gorm:"type:decimal(12,4)" json:"duration"`
	DurationUnit DurationUnit `gorm:"type:varchar(10);not null;default:'DAYS'" json:"duration_unit"`
	Color        *string      `gorm:"type:varchar(7)" json:"color"`
	ExternalID   *string      `gorm:"type:varchar(255)" json:"external_id"`
	Status       StageStatus  `gorm:"type:varchar(10);not null;default:'NEW';index:idx_construction_stages_status" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName specifies the table name for Stage
func (Stage) TableName() string {
	return "construction_stages"
}
