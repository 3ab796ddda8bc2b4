package model

import (
	"time"
)

const (
	AttendanceStatusPresent   = "Present"
	AttendanceStatusAbsent    = "Absent"
	AttendanceStatusNotMarked = "Not Marked" // tidak pernah disimpan, hanya hasil join
)

// AttendanceModel merepresentasikan tabel attendance.
// Satu baris per (training, user, date); tanggal date-only (YYYY-MM-DD).
type AttendanceModel struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TrainingID uint   `gorm:"not null;uniqueIndex:idx_attendance_training_user_date" json:"trainingId"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_attendance_training_user_date" json:"userId"`
	Date       string `gorm:"size:10;not null;uniqueIndex:idx_attendance_training_user_date" json:"date"`
	Status     string `gorm:"size:10;not null" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}
