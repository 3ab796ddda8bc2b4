package model

import (
	"time"
)

const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
	QuestionTypeShortAnswer    = "short-answer"
)

// QuizModel merepresentasikan tabel quizzes.
type QuizModel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TrainingID  uint   `gorm:"index;not null" json:"trainingId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// menit; 30 default, lihat DTO
	TimeLimit    int `gorm:"not null;default:30" json:"timeLimit"`
	PassingScore int `gorm:"not null;default:70" json:"passingScore"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (QuizModel) TableName() string {
	return "quizzes"
}

// QuizQuestionModel merepresentasikan tabel quiz_questions.
// CorrectAnswer hanya terisi untuk tipe true-false; multiple-choice
// menyimpan kuncinya di quiz_options.is_correct, short-answer tidak
// punya kunci (review manual).
type QuizQuestionModel struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	QuizID        uint   `gorm:"index;not null" json:"quizId"`
	Question      string `gorm:"type:text;not null" json:"question"`
	QuestionType  string `gorm:"size:20;not null;default:'multiple-choice'" json:"type"`
	Points        int    `gorm:"not null;default:1" json:"points"`
	CorrectAnswer *bool  `json:"-"`

	Options []QuizOptionModel `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (QuizQuestionModel) TableName() string {
	return "quiz_questions"
}

// QuizOptionModel merepresentasikan tabel quiz_options.
type QuizOptionModel struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	OptionText string `gorm:"type:text;not null" json:"optionText"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"isCorrect"`
}

func (QuizOptionModel) TableName() string {
	return "quiz_options"
}
