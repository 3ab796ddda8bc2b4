package dto

import (
	"encoding/json"
	"time"

	quizModel "trainingku_backend/internals/features/quizzes/model"
)

/* =========================================================
   Request DTO
========================================================= */

type CreateQuizRequest struct {
	TrainingID   uint            `json:"trainingId" validate:"required"`
	Title        string          `json:"title" validate:"required"`
	Description  string          `json:"description"`
	TimeLimit    json.RawMessage `json:"timeLimit"`
	PassingScore json.RawMessage `json:"passingScore"`
}

type CreateQuestionOption struct {
	OptionText string `json:"optionText" validate:"required"`
	IsCorrect  bool   `json:"isCorrect"`
}

type CreateQuestionRequest struct {
	Question      string                 `json:"question" validate:"required"`
	QuestionType  string                 `json:"questionType"`
	Points        int                    `json:"points"`
	CorrectAnswer *bool                  `json:"correctAnswer"`
	Options       []CreateQuestionOption `json:"options"`
}

type SubmitResponseRequest struct {
	AttemptID  uint   `json:"attemptId" validate:"required"`
	QuestionID uint   `json:"questionId" validate:"required"`
	Answer     string `json:"answer"`
}

/* =========================================================
   Response DTO
========================================================= */

type OptionItem struct {
	ID         uint   `json:"optionId"`
	OptionText string `json:"optionText"`
}

type QuestionItem struct {
	ID           uint         `json:"questionId"`
	Question     string       `json:"question"`
	QuestionType string       `json:"questionType"`
	Points       int          `json:"points"`
	Options      []OptionItem `json:"options"`
}

type QuizItem struct {
	ID            uint   `json:"quizId"`
	TrainingID    uint   `json:"trainingId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TimeLimit     int    `json:"timeLimit"`
	PassingScore  int    `json:"passingScore"`
	QuestionCount int64  `json:"questionCount"`
	AttemptCount  int64  `json:"attemptCount"`
}

type QuizDetail struct {
	QuizItem
	Questions []QuestionItem `json:"questions"`
}

type AttemptItem struct {
	ID        uint       `json:"attemptId"`
	QuizID    uint       `json:"quizId"`
	Status    string     `json:"status"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Score     *int       `json:"score,omitempty"`
}

type AttemptResult struct {
	AttemptItem
	QuizTitle      string `json:"quizTitle"`
	PassingScore   int    `json:"passingScore"`
	TotalAnswered  int64  `json:"totalAnswered"`
	CorrectAnswers int64  `json:"correctAnswers"`
}

func FromModelQuiz(m *quizModel.QuizModel) QuizItem {
	return QuizItem{
		ID:           m.ID,
		TrainingID:   m.TrainingID,
		Title:        m.Title,
		Description:  m.Description,
		TimeLimit:    m.TimeLimit,
		PassingScore: m.PassingScore,
	}
}

func FromModelAttempt(m *quizModel.QuizAttemptModel) AttemptItem {
	return AttemptItem{
		ID:        m.ID,
		QuizID:    m.QuizID,
		Status:    m.Status,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Score:     m.Score,
	}
}

// FromModelQuestion menyembunyikan kunci jawaban: flag is_correct tidak
// pernah ikut keluar, dan soal true-false diberi opsi sintetis True/False.
func FromModelQuestion(m *quizModel.QuizQuestionModel) QuestionItem {
	item := QuestionItem{
		ID:           m.ID,
		Question:     m.Question,
		QuestionType: m.QuestionType,
		Points:       m.Points,
		Options:      []OptionItem{},
	}
	switch m.QuestionType {
	case quizModel.QuestionTypeTrueFalse:
		item.Options = []OptionItem{
			{OptionText: "True"},
			{OptionText: "False"},
		}
	default:
		for _, o := range m.Options {
			item.Options = append(item.Options, OptionItem{ID: o.ID, OptionText: o.OptionText})
		}
	}
	return item
}
