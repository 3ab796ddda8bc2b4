package dto

import (
	"time"

	feedbackModel "trainingku_backend/internals/features/feedback/model"
)

type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type FeedbackItem struct {
	ID         uint      `json:"feedbackId"`
	TrainingID uint      `json:"trainingId"`
	UserID     uint      `json:"userId"`
	UserName   string    `json:"userName,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

type FeedbackStats struct {
	TotalCount    int64         `json:"totalCount"`
	AverageRating float64       `json:"averageRating"`
	Distribution  map[int]int64 `json:"distribution"`
}

type FeedbackListResponse struct {
	Stats        FeedbackStats  `json:"stats"`
	Feedback     []FeedbackItem `json:"feedback"`
	UserFeedback *FeedbackItem  `json:"userFeedback,omitempty"`
}

func FromModelFeedback(m *feedbackModel.FeedbackModel, userName string) FeedbackItem {
	return FeedbackItem{
		ID:         m.ID,
		TrainingID: m.TrainingID,
		UserID:     m.UserID,
		UserName:   userName,
		Rating:     m.Rating,
		Comment:    m.CommentText,
		CreatedAt:  m.CreatedAt,
	}
}
