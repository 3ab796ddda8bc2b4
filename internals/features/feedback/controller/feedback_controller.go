package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feedbackDTO "trainingku_backend/internals/features/feedback/dto"
	feedbackModel "trainingku_backend/internals/features/feedback/model"
	trainingModel "trainingku_backend/internals/features/trainings/model"
	helper "trainingku_backend/internals/helpers"
)

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// POST /api/trainings/:id/feedback
//
// Satu feedback per (training, user): submit berikutnya menimpa yang lama.
func (ctl *FeedbackController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	trainingID, err := c.ParamsInt("id")
	if err != nil || trainingID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid training id")
	}

	var training trainingModel.TrainingModel
	if err := ctl.DB.First(&training, trainingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Training not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch training")
	}

	var req feedbackDTO.SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Rating must be between 1 and 5")
	}

	// cukup punya baris enrollment, status apapun
	var enrolled int64
	ctl.DB.Model(&trainingModel.EnrollmentModel{}).
		Where("training_id = ? AND user_id = ?", training.ID, userID).
		Count(&enrolled)
	if enrolled == 0 {
		return helper.JsonError(c, fiber.StatusForbidden, "You must be enrolled in this training to give feedback")
	}

	comment := strings.TrimSpace(req.Comment)

	var existing feedbackModel.FeedbackModel
	err = ctl.DB.Where("training_id = ? AND user_id = ?", training.ID, userID).First(&existing).Error
	switch {
	case err == nil:
		existing.Rating = req.Rating
		existing.CommentText = comment
		if err := ctl.DB.Save(&existing).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update feedback")
		}
		return helper.JsonOK(c, "Feedback updated successfully", feedbackDTO.FromModelFeedback(&existing, ""))
	case errors.Is(err, gorm.ErrRecordNotFound):
		feedback := feedbackModel.FeedbackModel{
			TrainingID:  training.ID,
			UserID:      userID,
			Rating:      req.Rating,
			CommentText: comment,
		}
		if err := ctl.DB.Create(&feedback).Error; err != nil {
			if isFeedbackConflict(err) {
				// kalah balapan dengan submit kembar: perlakukan sebagai update
				if err := ctl.DB.Where("training_id = ? AND user_id = ?", training.ID, userID).
					First(&existing).Error; err == nil {
					existing.Rating = req.Rating
					existing.CommentText = comment
					if err := ctl.DB.Save(&existing).Error; err == nil {
						return helper.JsonOK(c, "Feedback updated successfully", feedbackDTO.FromModelFeedback(&existing, ""))
					}
				}
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit feedback")
		}
		return helper.JsonCreated(c, "Feedback submitted successfully", feedbackDTO.FromModelFeedback(&feedback, ""))
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit feedback")
	}
}

// GET /api/trainings/:id/feedback
func (ctl *FeedbackController) GetByTraining(c *fiber.Ctx) error {
	trainingID, err := c.ParamsInt("id")
	if err != nil || trainingID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid training id")
	}

	var count int64
	ctl.DB.Model(&trainingModel.TrainingModel{}).Where("id = ?", trainingID).Count(&count)
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Training not found")
	}

	type feedbackScan struct {
		feedbackModel.FeedbackModel
		FullName string
	}
	var scans []feedbackScan
	if err := ctl.DB.Table("feedback AS f").
		Select("f.*, u.full_name").
		Joins("JOIN users u ON u.id = f.user_id").
		Where("f.training_id = ?", trainingID).
		Order("f.created_at DESC").
		Scan(&scans).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch feedback")
	}

	resp := feedbackDTO.FeedbackListResponse{
		Stats: feedbackDTO.FeedbackStats{
			Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		},
		Feedback: make([]feedbackDTO.FeedbackItem, 0, len(scans)),
	}

	var sum int64
	for i := range scans {
		item := feedbackDTO.FromModelFeedback(&scans[i].FeedbackModel, scans[i].FullName)
		resp.Feedback = append(resp.Feedback, item)
		resp.Stats.TotalCount++
		resp.Stats.Distribution[scans[i].Rating]++
		sum += int64(scans[i].Rating)
	}
	if resp.Stats.TotalCount > 0 {
		resp.Stats.AverageRating = float64(sum) / float64(resp.Stats.TotalCount)
	}

	if userID, err := helper.GetUserID(c); err == nil {
		for i := range resp.Feedback {
			if resp.Feedback[i].UserID == userID {
				resp.UserFeedback = &resp.Feedback[i]
				break
			}
		}
	}

	return helper.JsonOK(c, "", resp)
}

// DELETE /api/trainings/feedback/:feedbackId
//
// Hanya pemilik yang boleh menghapus; feedback milik orang lain dijawab 404
// yang sama dengan feedback yang memang tidak ada.
func (ctl *FeedbackController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	feedbackID, err := c.ParamsInt("feedbackId")
	if err != nil || feedbackID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid feedback id")
	}

	var feedback feedbackModel.FeedbackModel
	if err := ctl.DB.Where("id = ? AND user_id = ?", feedbackID, userID).First(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Feedback not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch feedback")
	}

	if err := ctl.DB.Delete(&feedback).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete feedback")
	}

	return helper.JsonDeleted(c, "Feedback deleted successfully", fiber.Map{"feedbackId": feedback.ID})
}

func isFeedbackConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
