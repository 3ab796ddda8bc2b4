package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusCompleted  = "completed"
	AttemptStatusAbandoned  = "abandoned"
)

// QuizAttemptModel merepresentasikan tabel quiz_attempts.
// Maksimal satu attempt in_progress per (quiz, user) — dijaga partial
// unique index (lihat databases.Migrate), bukan hanya check-then-act.
type QuizAttemptModel struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	QuizID uint   `gorm:"index;not null" json:"quizId"`
	UserID uint   `gorm:"index;not null" json:"userId"`
	Status string `gorm:"size:20;not null;default:'in_progress'" json:"status"`

	StartTime time.Time  `gorm:"autoCreateTime" json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Score     *int       `json:"score"`

	// snapshot penilaian per soal, diisi saat complete
	Details datatypes.JSON `json:"details,omitempty"`
}

func (QuizAttemptModel) TableName() string {
	return "quiz_attempts"
}

// QuizResponseModel merepresentasikan tabel quiz_responses.
// Satu baris per (attempt, question); submit ulang menimpa jawaban lama.
// IsCorrect nil berarti menunggu review manual (short-answer).
type QuizResponseModel struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	AttemptID  uint   `gorm:"not null;uniqueIndex:idx_responses_attempt_question" json:"attemptId"`
	QuestionID uint   `gorm:"not null;uniqueIndex:idx_responses_attempt_question" json:"questionId"`
	Answer     string `gorm:"type:text" json:"answer"`
	IsCorrect  *bool  `json:"isCorrect"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (QuizResponseModel) TableName() string {
	return "quiz_responses"
}
