package model

import (
	"time"
)

const (
	TrainingStatusActive    = "Active"
	TrainingStatusUpcoming  = "Upcoming"
	TrainingStatusCompleted = "Completed"
	TrainingStatusInactive  = "Inactive"
)

// TrainingModel merepresentasikan tabel trainings.
// Tanggal disimpan date-only (YYYY-MM-DD) sesuai kontrak API.
type TrainingModel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	TrainerID   uint   `gorm:"index;not null" json:"trainerId"`
	StartDate   string `gorm:"size:10;not null" json:"startDate"`
	EndDate     string `gorm:"size:10;not null" json:"endDate"`
	Capacity    int    `gorm:"not null;default:20" json:"capacity"`
	Location    string `gorm:"size:255" json:"location"`
	Category    string `gorm:"size:100;not null;default:'Technical'" json:"category"`
	Level       string `gorm:"size:50;not null;default:'Beginner'" json:"level"`
	Status      string `gorm:"size:20;not null;default:'Active'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (TrainingModel) TableName() string {
	return "trainings"
}
