package controller

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizDTO "trainingku_backend/internals/features/quizzes/dto"
	quizModel "trainingku_backend/internals/features/quizzes/model"
	trainingModel "trainingku_backend/internals/features/trainings/model"
	helper "trainingku_backend/internals/helpers"
)

type QuizzesController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewQuizzesController(db *gorm.DB) *QuizzesController {
	return &QuizzesController{DB: db, validator: validator.New()}
}

// POST /api/quizzes/create
func (ctl *QuizzesController) Create(c *fiber.Ctx) error {
	var req quizDTO.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if req.TrainingID == 0 || strings.TrimSpace(req.Title) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "trainingId and title are required")
	}

	var count int64
	ctl.DB.Model(&trainingModel.TrainingModel{}).Where("id = ?", req.TrainingID).Count(&count)
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Training not found")
	}

	quiz := quizModel.QuizModel{
		TrainingID:   req.TrainingID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		TimeLimit:    parseIntOrDefault(req.TimeLimit, 30),
		PassingScore: parseIntOrDefault(req.PassingScore, 70),
	}
	if err := ctl.DB.Create(&quiz).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create quiz")
	}

	return helper.JsonCreated(c, "Quiz created successfully", quizDTO.FromModelQuiz(&quiz))
}

// GET /api/quizzes/training/:trainingId
func (ctl *QuizzesController) GetByTraining(c *fiber.Ctx) error {
	trainingID, err := c.ParamsInt("trainingId")
	if err != nil || trainingID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid training id")
	}

	var count int64
	ctl.DB.Model(&trainingModel.TrainingModel{}).Where("id = ?", trainingID).Count(&count)
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Training not found")
	}

	var quizzes []quizModel.QuizModel
	if err := ctl.DB.Where("training_id = ?", trainingID).Order("id ASC").Find(&quizzes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quizzes")
	}

	items := make([]quizDTO.QuizDetail, 0, len(quizzes))
	for i := range quizzes {
		detail, err := ctl.buildDetail(&quizzes[i])
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quizzes")
		}
		items = append(items, *detail)
	}

	return helper.JsonOK(c, "", items)
}

// GET /api/quizzes/:quizId
func (ctl *QuizzesController) GetByID(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("quizId")
	if err != nil || quizID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}

	var quiz quizModel.QuizModel
	if err := ctl.DB.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quiz")
	}

	detail, err := ctl.buildDetail(&quiz)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quiz")
	}

	return helper.JsonOK(c, "", detail)
}

func (ctl *QuizzesController) buildDetail(quiz *quizModel.QuizModel) (*quizDTO.QuizDetail, error) {
	detail := quizDTO.QuizDetail{
		QuizItem:  quizDTO.FromModelQuiz(quiz),
		Questions: []quizDTO.QuestionItem{},
	}

	var questions []quizModel.QuizQuestionModel
	if err := ctl.DB.Preload("Options").
		Where("quiz_id = ?", quiz.ID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	for i := range questions {
		detail.Questions = append(detail.Questions, quizDTO.FromModelQuestion(&questions[i]))
	}
	detail.QuestionCount = int64(len(questions))

	if err := ctl.DB.Model(&quizModel.QuizAttemptModel{}).
		Where("quiz_id = ?", quiz.ID).
		Count(&detail.AttemptCount).Error; err != nil {
		return nil, err
	}

	return &detail, nil
}

// parseIntOrDefault menerima angka JSON maupun string angka; selain itu
// kembali ke default.
func parseIntOrDefault(raw json.RawMessage, def int) int {
	if len(raw) == 0 {
		return def
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			return n
		}
	}
	return def
}
