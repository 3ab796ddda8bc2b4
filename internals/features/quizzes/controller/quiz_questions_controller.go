package controller

import (
	"errors"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizDTO "trainingku_backend/internals/features/quizzes/dto"
	quizModel "trainingku_backend/internals/features/quizzes/model"
	helper "trainingku_backend/internals/helpers"
)

type QuizQuestionsController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewQuizQuestionsController(db *gorm.DB) *QuizQuestionsController {
	return &QuizQuestionsController{DB: db, validator: validator.New()}
}

// POST /api/quizzes/:quizId/questions
func (ctl *QuizQuestionsController) Create(c *fiber.Ctx) error {
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

	var req quizDTO.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if strings.TrimSpace(req.Question) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Question text is required")
	}

	questionType := req.QuestionType
	if questionType == "" {
		questionType = quizModel.QuestionTypeMultipleChoice
	}
	switch questionType {
	case quizModel.QuestionTypeMultipleChoice,
		quizModel.QuestionTypeTrueFalse,
		quizModel.QuestionTypeShortAnswer:
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question type")
	}

	question := quizModel.QuizQuestionModel{
		QuizID:       quiz.ID,
		Question:     strings.TrimSpace(req.Question),
		QuestionType: questionType,
		Points:       1,
	}
	if req.Points > 0 {
		question.Points = req.Points
	}

	switch questionType {
	case quizModel.QuestionTypeMultipleChoice:
		options, err := validateOptions(req.Options)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		question.Options = options
	case quizModel.QuestionTypeTrueFalse:
		if req.CorrectAnswer == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "correctAnswer is required for true-false questions")
		}
		question.CorrectAnswer = req.CorrectAnswer
	}

	if err := ctl.DB.Create(&question).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create question")
	}

	return helper.JsonCreated(c, "Question added successfully", quizDTO.FromModelQuestion(&question))
}

// DELETE /api/quizzes/questions/:questionId
func (ctl *QuizQuestionsController) Delete(c *fiber.Ctx) error {
	questionID, err := c.ParamsInt("questionId")
	if err != nil || questionID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var question quizModel.QuizQuestionModel
	if err := ctl.DB.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch question")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).
			Delete(&quizModel.QuizOptionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).
			Delete(&quizModel.QuizResponseModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete question")
	}

	return helper.JsonDeleted(c, "Question deleted successfully", fiber.Map{"questionId": question.ID})
}

// validateOptions: multiple-choice wajib >= 2 opsi non-kosong dan minimal
// satu yang benar.
func validateOptions(raw []quizDTO.CreateQuestionOption) ([]quizModel.QuizOptionModel, error) {
	options := make([]quizModel.QuizOptionModel, 0, len(raw))
	hasCorrect := false
	for _, o := range raw {
		text := strings.TrimSpace(o.OptionText)
		if text == "" {
			continue
		}
		if o.IsCorrect {
			hasCorrect = true
		}
		options = append(options, quizModel.QuizOptionModel{
			OptionText: text,
			IsCorrect:  o.IsCorrect,
		})
	}
	if len(options) < 2 {
		return nil, errors.New("Multiple-choice questions require at least 2 options")
	}
	if !hasCorrect {
		return nil, errors.New("Multiple-choice questions require at least one correct option")
	}
	return options, nil
}
