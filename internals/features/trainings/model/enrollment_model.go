package model

import (
	"time"
)

const (
	EnrollmentStatusPending  = "Pending"
	EnrollmentStatusApproved = "Approved"
	EnrollmentStatusRejected = "Rejected"
)

// EnrollmentModel merepresentasikan tabel training_enrollments.
// Unique index (training_id, user_id) adalah sumber kebenaran anti
// double-enroll; pengecekan aplikasi hanya fast path.
type EnrollmentModel struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TrainingID uint   `gorm:"not null;uniqueIndex:idx_enrollments_training_user" json:"trainingId"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_enrollments_training_user" json:"userId"`
	Status     string `gorm:"size:20;not null;default:'Pending'" json:"status"`

	EnrollmentDate time.Time `gorm:"autoCreateTime" json:"enrollmentDate"`
}

func (EnrollmentModel) TableName() string {
	return "training_enrollments"
}
