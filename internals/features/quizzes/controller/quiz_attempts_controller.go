package controller

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	quizDTO "trainingku_backend/internals/features/quizzes/dto"
	quizModel "trainingku_backend/internals/features/quizzes/model"
	quizService "trainingku_backend/internals/features/quizzes/service"
	helper "trainingku_backend/internals/helpers"
)

// Toleransi keterlambatan submit setelah batas waktu quiz habis.
const attemptDeadlineGrace = 1 * time.Minute

type QuizAttemptsController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewQuizAttemptsController(db *gorm.DB) *QuizAttemptsController {
	return &QuizAttemptsController{DB: db, validator: validator.New()}
}

// POST /api/quizzes/:quizId/start
//
// Idempotent: attempt in_progress yang sudah ada dikembalikan apa adanya
// (200), baru dibuat kalau belum ada (201). Partial unique index di
// quiz_attempts menjamin maksimal satu in_progress per (quiz, user).
func (ctl *QuizAttemptsController) Start(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

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

	var attempt quizModel.QuizAttemptModel
	created := false

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("quiz_id = ? AND user_id = ? AND status = ?",
			quiz.ID, userID, quizModel.AttemptStatusInProgress).
			First(&attempt).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		attempt = quizModel.QuizAttemptModel{
			QuizID: quiz.ID,
			UserID: userID,
			Status: quizModel.AttemptStatusInProgress,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		// kalah balapan dengan request kembar: ambil attempt pemenangnya
		if isUniqueIndexViolation(err) {
			if err := ctl.DB.Where("quiz_id = ? AND user_id = ? AND status = ?",
				quiz.ID, userID, quizModel.AttemptStatusInProgress).
				First(&attempt).Error; err == nil {
				return helper.JsonOK(c, "Attempt already in progress", quizDTO.FromModelAttempt(&attempt))
			}
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start quiz attempt")
	}

	if created {
		return helper.JsonCreated(c, "Quiz attempt started", quizDTO.FromModelAttempt(&attempt))
	}
	return helper.JsonOK(c, "Attempt already in progress", quizDTO.FromModelAttempt(&attempt))
}

// POST /api/quizzes/response
func (ctl *QuizAttemptsController) SubmitResponse(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req quizDTO.SubmitResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "attemptId and questionId are required")
	}

	var attempt quizModel.QuizAttemptModel
	if err := ctl.DB.First(&attempt, req.AttemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attempt not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attempt")
	}
	if attempt.UserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "This attempt does not belong to you")
	}
	if attempt.Status != quizModel.AttemptStatusInProgress {
		return helper.JsonError(c, fiber.StatusConflict, "Attempt is no longer in progress")
	}

	var quiz quizModel.QuizModel
	if err := ctl.DB.First(&quiz, attempt.QuizID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quiz")
	}

	// batas waktu dicek di server, bukan dipercayakan ke client
	deadline := attempt.StartTime.Add(time.Duration(quiz.TimeLimit)*time.Minute + attemptDeadlineGrace)
	if time.Now().After(deadline) {
		if err := ctl.finalizeAttempt(&attempt, &quiz); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to complete attempt")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, "Time limit exceeded, attempt has been completed")
	}

	var question quizModel.QuizQuestionModel
	if err := ctl.DB.First(&question, req.QuestionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch question")
	}
	if question.QuizID != attempt.QuizID {
		return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
	}

	isCorrect, err := quizService.GradeAnswer(ctl.DB, &question, req.Answer)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to grade answer")
	}

	// satu baris per (attempt, question); submit ulang menimpa jawaban lama
	response := quizModel.QuizResponseModel{
		AttemptID:  attempt.ID,
		QuestionID: question.ID,
		Answer:     req.Answer,
		IsCorrect:  isCorrect,
	}
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.Assignments(map[string]any{"answer": req.Answer, "is_correct": isCorrect}),
	}).Create(&response).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save response")
	}

	return helper.JsonOK(c, "Response saved", fiber.Map{
		"attemptId":  attempt.ID,
		"questionId": question.ID,
	})
}

// POST /api/quizzes/attempt/:attemptId/complete
func (ctl *QuizAttemptsController) Complete(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	attemptID, err := c.ParamsInt("attemptId")
	if err != nil || attemptID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}

	var attempt quizModel.QuizAttemptModel
	if err := ctl.DB.First(&attempt, attemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attempt not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attempt")
	}
	if attempt.UserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "This attempt does not belong to you")
	}
	if attempt.Status != quizModel.AttemptStatusInProgress {
		return helper.JsonError(c, fiber.StatusConflict, "Attempt has already been completed")
	}

	var quiz quizModel.QuizModel
	if err := ctl.DB.First(&quiz, attempt.QuizID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quiz")
	}

	if err := ctl.finalizeAttempt(&attempt, &quiz); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to complete attempt")
	}

	score := 0
	if attempt.Score != nil {
		score = *attempt.Score
	}
	return helper.JsonOK(c, "Quiz attempt completed", fiber.Map{
		"attemptId": attempt.ID,
		"score":     score,
		"passed":    score >= quiz.PassingScore,
	})
}

// GET /api/quizzes/:quizId/results
func (ctl *QuizAttemptsController) Results(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

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

	var attempts []quizModel.QuizAttemptModel
	if err := ctl.DB.Where("quiz_id = ? AND user_id = ?", quiz.ID, userID).
		Order("start_time DESC").
		Find(&attempts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch results")
	}

	results := make([]quizDTO.AttemptResult, 0, len(attempts))
	for i := range attempts {
		result := quizDTO.AttemptResult{
			AttemptItem:  quizDTO.FromModelAttempt(&attempts[i]),
			QuizTitle:    quiz.Title,
			PassingScore: quiz.PassingScore,
		}
		ctl.DB.Model(&quizModel.QuizResponseModel{}).
			Where("attempt_id = ?", attempts[i].ID).
			Count(&result.TotalAnswered)
		ctl.DB.Model(&quizModel.QuizResponseModel{}).
			Where("attempt_id = ? AND is_correct = ?", attempts[i].ID, true).
			Count(&result.CorrectAnswers)
		results = append(results, result)
	}

	return helper.JsonOK(c, "", results)
}

// finalizeAttempt menghitung skor dari respon tersimpan lalu menutup attempt.
func (ctl *QuizAttemptsController) finalizeAttempt(attempt *quizModel.QuizAttemptModel, quiz *quizModel.QuizModel) error {
	var total, correct int64
	if err := ctl.DB.Model(&quizModel.QuizResponseModel{}).
		Where("attempt_id = ?", attempt.ID).
		Count(&total).Error; err != nil {
		return err
	}
	if err := ctl.DB.Model(&quizModel.QuizResponseModel{}).
		Where("attempt_id = ? AND is_correct = ?", attempt.ID, true).
		Count(&correct).Error; err != nil {
		return err
	}

	score := quizService.ComputeScore(correct, total)
	now := time.Now()

	details, err := buildAttemptDetails(total, correct, score, quiz.PassingScore)
	if err != nil {
		return err
	}

	if err := ctl.DB.Model(attempt).Updates(map[string]any{
		"status":   quizModel.AttemptStatusCompleted,
		"end_time": now,
		"score":    score,
		"details":  details,
	}).Error; err != nil {
		return err
	}

	attempt.Status = quizModel.AttemptStatusCompleted
	attempt.EndTime = &now
	attempt.Score = &score
	attempt.Details = details
	return nil
}

func buildAttemptDetails(total, correct int64, score, passingScore int) (datatypes.JSON, error) {
	b, err := json.Marshal(map[string]any{
		"totalAnswered":  total,
		"correctAnswers": correct,
		"score":          score,
		"passed":         score >= passingScore,
	})
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func isUniqueIndexViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
