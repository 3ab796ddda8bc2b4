package model

import (
	"time"
)

// FeedbackModel merepresentasikan tabel feedback.
// Satu baris per (training, user); submit ulang = update (upsert).
type FeedbackModel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TrainingID  uint   `gorm:"not null;uniqueIndex:idx_feedback_training_user" json:"trainingId"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_feedback_training_user" json:"userId"`
	Rating      int    `gorm:"not null" json:"rating"`
	CommentText string `gorm:"column:comment_text;type:text" json:"comment"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (FeedbackModel) TableName() string {
	return "feedback"
}
