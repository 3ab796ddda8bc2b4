package dto

import (
	trainingModel "trainingku_backend/internals/features/trainings/model"
)

/* =========================================================
   Request DTO
========================================================= */

type CreateTrainingRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
	Capacity    *int   `json:"capacity" validate:"omitempty,min=1"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Status      string `json:"status"`
}

type UpdateTrainingRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Description *string `json:"description"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Capacity    *int    `json:"capacity" validate:"omitempty,min=1"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	Level       *string `json:"level"`
	Status      *string `json:"status"`
}

/* =========================================================
   Response DTO
========================================================= */

type TrainingListItem struct {
	ID             uint   `json:"trainingId"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	TrainerID      uint   `json:"trainerId"`
	TrainerName    string `json:"trainerName"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Capacity       int    `json:"capacity"`
	Location       string `json:"location"`
	Category       string `json:"category"`
	Level          string `json:"level"`
	Status         string `json:"status"`
	EnrolledCount  int64  `json:"enrolledCount"`
	MaterialsCount int64  `json:"materialsCount"`
}

type MaterialItem struct {
	ID      uint   `json:"materialId"`
	Title   string `json:"title"`
	FileURL string `json:"fileUrl"`
}

type FeedbackStats struct {
	AverageRating float64       `json:"averageRating"`
	TotalCount    int64         `json:"totalCount"`
	Distribution  map[int]int64 `json:"distribution"`
}

type TrainingDetail struct {
	TrainingListItem
	IsEnrolled       bool           `json:"isEnrolled"`
	EnrollmentStatus string         `json:"enrollmentStatus,omitempty"`
	Materials        []MaterialItem `json:"materials"`
	AttendanceCount  int64          `json:"attendanceCount"`
	FeedbackStats    *FeedbackStats `json:"feedbackStats,omitempty"`
}

type EnrollmentItem struct {
	ID             uint   `json:"enrollmentId"`
	TrainingID     uint   `json:"trainingId"`
	UserID         uint   `json:"userId"`
	Status         string `json:"status"`
	EnrollmentDate string `json:"enrollmentDate"`
}

func FromModelEnrollment(m *trainingModel.EnrollmentModel) EnrollmentItem {
	return EnrollmentItem{
		ID:             m.ID,
		TrainingID:     m.TrainingID,
		UserID:         m.UserID,
		Status:         m.Status,
		EnrollmentDate: m.EnrollmentDate.Format("2006-01-02"),
	}
}

func FromModelTraining(m *trainingModel.TrainingModel, trainerName string) TrainingListItem {
	return TrainingListItem{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		TrainerID:   m.TrainerID,
		TrainerName: trainerName,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Capacity:    m.Capacity,
		Location:    m.Location,
		Category:    m.Category,
		Level:       m.Level,
		Status:      m.Status,
	}
}
