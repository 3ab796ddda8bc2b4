package controller

import (
	"errors"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceModel "trainingku_backend/internals/features/attendance/model"
	feedbackModel "trainingku_backend/internals/features/feedback/model"
	quizModel "trainingku_backend/internals/features/quizzes/model"
	trainingDTO "trainingku_backend/internals/features/trainings/dto"
	trainingModel "trainingku_backend/internals/features/trainings/model"
	helper "trainingku_backend/internals/helpers"
)

type TrainingController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewTrainingController(db *gorm.DB) *TrainingController {
	return &TrainingController{DB: db, validator: validator.New()}
}

/* =========================================================
   Katalog & detail
========================================================= */

// GET /api/trainings
func (ctl *TrainingController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c)

	var total int64
	if err := ctl.DB.Model(&trainingModel.TrainingModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch trainings")
	}

	var rows []trainingModel.TrainingModel
	if err := ctl.DB.
		Order("start_date DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch trainings")
	}

	items := make([]trainingDTO.TrainingListItem, 0, len(rows))
	for i := range rows {
		items = append(items, ctl.decorate(&rows[i]))
	}

	return helper.JsonList(c, "", items, helper.BuildPagination(total, p))
}

// GET /api/trainings/:id
func (ctl *TrainingController) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid training id")
	}

	var training trainingModel.TrainingModel
	if err := ctl.DB.First(&training, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Training not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch training")
	}

	detail := trainingDTO.TrainingDetail{
		TrainingListItem: ctl.decorate(&training),
		Materials:        []trainingDTO.MaterialItem{},
	}

	var materials []trainingModel.TrainingMaterialModel
	if err := ctl.DB.Where("training_id = ?", training.ID).Order("id ASC").Find(&materials).Error; err == nil {
		for _, m := range materials {
			detail.Materials = append(detail.Materials, trainingDTO.MaterialItem{
				ID: m.ID, Title: m.Title, FileURL: m.FileURL,
			})
		}
	}

	ctl.DB.Model(&attendanceModel.AttendanceModel{}).
		Where("training_id = ?", training.ID).
		Count(&detail.AttendanceCount)

	detail.FeedbackStats = ctl.feedbackStats(training.ID)

	// status enrollment milik caller (kalau login)
	if userID, err := helper.GetUserID(c); err == nil {
		var enr trainingModel.EnrollmentModel
		if err := ctl.DB.
			Where("training_id = ? AND user_id = ?", training.ID, userID).
			First(&enr).Error; err == nil {
			detail.IsEnrolled = true
			detail.EnrollmentStatus = enr.Status
		}
	}

	return helper.JsonOK(c, "", detail)
}

// GET /api/employee/trainings
func (ctl *TrainingController) GetEmployeeTrainings(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var rows []trainingModel.TrainingModel
	if err := ctl.DB.
		Where("status IN ?", []string{trainingModel.TrainingStatusActive, trainingModel.TrainingStatusUpcoming}).
		Order("start_date DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch trainings")
	}

	var enrollments []trainingModel.EnrollmentModel
	if err := ctl.DB.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}
	enrollmentByTraining := make(map[uint]string, len(enrollments))
	for _, e := range enrollments {
		enrollmentByTraining[e.TrainingID] = e.Status
	}

	type employeeTraining struct {
		trainingDTO.TrainingListItem
		IsEnrolled       bool   `json:"isEnrolled"`
		EnrollmentStatus string `json:"enrollmentStatus,omitempty"`
	}

	items := make([]employeeTraining, 0, len(rows))
	for i := range rows {
		item := employeeTraining{TrainingListItem: ctl.decorate(&rows[i])}
		if status, ok := enrollmentByTraining[rows[i].ID]; ok {
			item.IsEnrolled = true
			item.EnrollmentStatus = status
		}
		items = append(items, item)
	}

	return helper.JsonOK(c, "", items)
}

/* =========================================================
   Mutasi (Trainer/Admin)
========================================================= */

// POST /api/trainings
func (ctl *TrainingController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req trainingDTO.CreateTrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Title, start date and end date are required")
	}

	startDate, err := helper.NormalizeDate(req.StartDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid start date format, expected YYYY-MM-DD")
	}
	endDate, err := helper.NormalizeDate(req.EndDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid end date format, expected YYYY-MM-DD")
	}
	if endDate < startDate {
		return helper.JsonError(c, fiber.StatusBadRequest, "End date must not be before start date")
	}

	training := trainingModel.TrainingModel{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		TrainerID:   userID,
		StartDate:   startDate,
		EndDate:     endDate,
		Location:    req.Location,
		Status:      trainingModel.TrainingStatusActive,
	}
	if req.Capacity != nil {
		training.Capacity = *req.Capacity
	}
	if req.Category != "" {
		training.Category = req.Category
	}
	if req.Level != "" {
		training.Level = req.Level
	}
	if req.Status != "" {
		training.Status = req.Status
	}

	if err := ctl.DB.Create(&training).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create training")
	}

	return helper.JsonCreated(c, "Training created successfully", ctl.decorate(&training))
}

// PUT /api/trainings/:id
func (ctl *TrainingController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid training id")
	}

	var training trainingModel.TrainingModel
	if err := ctl.DB.First(&training, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Training not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch training")
	}

	var req trainingDTO.UpdateTrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid training payload")
	}

	if req.Title != nil {
		training.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		training.Description = *req.Description
	}
	if req.StartDate != nil {
		d, err := helper.NormalizeDate(*req.StartDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid start date format, expected YYYY-MM-DD")
		}
		training.StartDate = d
	}
	if req.EndDate != nil {
		d, err := helper.NormalizeDate(*req.EndDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid end date format, expected YYYY-MM-DD")
		}
		training.EndDate = d
	}
	if training.EndDate < training.StartDate {
		return helper.JsonError(c, fiber.StatusBadRequest, "End date must not be before start date")
	}
	if req.Capacity != nil {
		training.Capacity = *req.Capacity
	}
	if req.Location != nil {
		training.Location = *req.Location
	}
	if req.Category != nil {
		training.Category = *req.Category
	}
	if req.Level != nil {
		training.Level = *req.Level
	}
	if req.Status != nil {
		training.Status = *req.Status
	}

	if err := ctl.DB.Save(&training).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update training")
	}

	return helper.JsonUpdated(c, "Training updated successfully", ctl.decorate(&training))
}

// DELETE /api/trainings/:id — hapus training beserta seluruh turunannya.
func (ctl *TrainingController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid training id")
	}

	var training trainingModel.TrainingModel
	if err := ctl.DB.First(&training, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Training not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch training")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var quizIDs []uint
		if err := tx.Model(&quizModel.QuizModel{}).
			Where("training_id = ?", training.ID).
			Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			var attemptIDs []uint
			if err := tx.Model(&quizModel.QuizAttemptModel{}).
				Where("quiz_id IN ?", quizIDs).
				Pluck("id", &attemptIDs).Error; err != nil {
				return err
			}
			if len(attemptIDs) > 0 {
				if err := tx.Where("attempt_id IN ?", attemptIDs).
					Delete(&quizModel.QuizResponseModel{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).
				Delete(&quizModel.QuizAttemptModel{}).Error; err != nil {
				return err
			}
			var questionIDs []uint
			if err := tx.Model(&quizModel.QuizQuestionModel{}).
				Where("quiz_id IN ?", quizIDs).
				Pluck("id", &questionIDs).Error; err != nil {
				return err
			}
			if len(questionIDs) > 0 {
				if err := tx.Where("question_id IN ?", questionIDs).
					Delete(&quizModel.QuizOptionModel{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).
				Delete(&quizModel.QuizQuestionModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", quizIDs).
				Delete(&quizModel.QuizModel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("training_id = ?", training.ID).
			Delete(&attendanceModel.AttendanceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("training_id = ?", training.ID).
			Delete(&feedbackModel.FeedbackModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("training_id = ?", training.ID).
			Delete(&trainingModel.TrainingMaterialModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("training_id = ?", training.ID).
			Delete(&trainingModel.EnrollmentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&training).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete training")
	}

	return helper.JsonDeleted(c, "Training deleted successfully", fiber.Map{"trainingId": training.ID})
}

/* =========================================================
   Internal
========================================================= */

func (ctl *TrainingController) decorate(m *trainingModel.TrainingModel) trainingDTO.TrainingListItem {
	var trainerName string
	ctl.DB.Table("users").
		Select("full_name").
		Where("id = ?", m.TrainerID).
		Limit(1).
		Scan(&trainerName)

	item := trainingDTO.FromModelTraining(m, trainerName)

	ctl.DB.Model(&trainingModel.EnrollmentModel{}).
		Where("training_id = ?", m.ID).
		Count(&item.EnrolledCount)
	ctl.DB.Model(&trainingModel.TrainingMaterialModel{}).
		Where("training_id = ?", m.ID).
		Count(&item.MaterialsCount)

	return item
}

func (ctl *TrainingController) feedbackStats(trainingID uint) *trainingDTO.FeedbackStats {
	type ratingRow struct {
		Rating int
		Total  int64
	}
	var rows []ratingRow
	if err := ctl.DB.Model(&feedbackModel.FeedbackModel{}).
		Select("rating, COUNT(*) AS total").
		Where("training_id = ?", trainingID).
		Group("rating").
		Scan(&rows).Error; err != nil {
		return nil
	}

	stats := trainingDTO.FeedbackStats{Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var sum int64
	for _, r := range rows {
		stats.Distribution[r.Rating] = r.Total
		stats.TotalCount += r.Total
		sum += int64(r.Rating) * r.Total
	}
	if stats.TotalCount > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalCount)
	}
	return &stats
}
