package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceModel "trainingku_backend/internals/features/attendance/model"
	trainingDTO "trainingku_backend/internals/features/trainings/dto"
	trainingModel "trainingku_backend/internals/features/trainings/model"
	helper "trainingku_backend/internals/helpers"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

// POST /api/trainings/:id/enroll
//
// Pendaftaran + seed absensi hari ini dalam satu transaksi. Unique index
// (training_id, user_id) jadi penjaga terakhir saat ada dua request bersamaan.
func (ctl *EnrollmentController) Enroll(c *fiber.Ctx) error {
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
	if training.Status != trainingModel.TrainingStatusActive {
		return helper.JsonError(c, fiber.StatusBadRequest, "Training is not open for enrollment")
	}

	// fast path; constraint tetap sumber kebenaran
	var existing int64
	ctl.DB.Model(&trainingModel.EnrollmentModel{}).
		Where("training_id = ? AND user_id = ?", training.ID, userID).
		Count(&existing)
	if existing > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Already enrolled in this training")
	}

	enrollment := trainingModel.EnrollmentModel{
		TrainingID: training.ID,
		UserID:     userID,
		Status:     trainingModel.EnrollmentStatusPending,
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		seed := attendanceModel.AttendanceModel{
			TrainingID: training.ID,
			UserID:     userID,
			Date:       helper.Today(),
			Status:     attendanceModel.AttendanceStatusPresent,
		}
		return tx.Create(&seed).Error
	})
	if err != nil {
		if isEnrollmentConflict(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Already enrolled in this training")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to enroll in training")
	}

	return helper.JsonCreated(c, "Enrolled successfully", trainingDTO.FromModelEnrollment(&enrollment))
}

// GET /api/trainings/:id/enrollments — Trainer/Admin melihat daftar peserta.
func (ctl *EnrollmentController) ListByTraining(c *fiber.Ctx) error {
	trainingID, err := c.ParamsInt("id")
	if err != nil || trainingID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid training id")
	}

	var count int64
	ctl.DB.Model(&trainingModel.TrainingModel{}).Where("id = ?", trainingID).Count(&count)
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Training not found")
	}

	type enrollmentScan struct {
		trainingModel.EnrollmentModel
		FullName string
		Email    string
	}
	var scans []enrollmentScan
	if err := ctl.DB.Table("training_enrollments AS e").
		Select("e.*, u.full_name, u.email").
		Joins("JOIN users u ON u.id = e.user_id").
		Where("e.training_id = ?", trainingID).
		Order("u.full_name ASC").
		Scan(&scans).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}

	type enrollmentRow struct {
		trainingDTO.EnrollmentItem
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	rows := make([]enrollmentRow, 0, len(scans))
	for i := range scans {
		rows = append(rows, enrollmentRow{
			EnrollmentItem: trainingDTO.FromModelEnrollment(&scans[i].EnrollmentModel),
			FullName:       scans[i].FullName,
			Email:          scans[i].Email,
		})
	}

	return helper.JsonOK(c, "", rows)
}

// PUT /api/trainings/:id/enrollments/:enrollmentId — Trainer/Admin ubah status.
func (ctl *EnrollmentController) UpdateStatus(c *fiber.Ctx) error {
	enrollmentID, err := c.ParamsInt("enrollmentId")
	if err != nil || enrollmentID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid enrollment id")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	switch body.Status {
	case trainingModel.EnrollmentStatusPending,
		trainingModel.EnrollmentStatusApproved,
		trainingModel.EnrollmentStatusRejected:
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid enrollment status")
	}

	var enrollment trainingModel.EnrollmentModel
	if err := ctl.DB.First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch enrollment")
	}

	enrollment.Status = body.Status
	if err := ctl.DB.Save(&enrollment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update enrollment")
	}

	return helper.JsonUpdated(c, "Enrollment updated successfully", trainingDTO.FromModelEnrollment(&enrollment))
}

func isEnrollmentConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
