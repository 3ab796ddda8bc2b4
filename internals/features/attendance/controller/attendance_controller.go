package controller

import (
	"errors"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attendanceDTO "trainingku_backend/internals/features/attendance/dto"
	attendanceModel "trainingku_backend/internals/features/attendance/model"
	trainingModel "trainingku_backend/internals/features/trainings/model"
	helper "trainingku_backend/internals/helpers"
)

type AttendanceController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db, validator: validator.New()}
}

// GET /api/trainings/:id/attendance?date=YYYY-MM-DD
//
// Roster: semua enrollment Approved/Pending, left join ke absensi tanggal
// tersebut. Yang belum ditandai tampil sebagai "Not Marked".
func (ctl *AttendanceController) GetRoster(c *fiber.Ctx) error {
	training, fail := ctl.requireActiveTraining(c)
	if fail != nil {
		return fail(c)
	}

	date, err := helper.NormalizeDate(c.Query("date"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	}

	type rosterScan struct {
		UserID           uint
		FullName         string
		Email            string
		EnrollmentStatus string
		AttendanceStatus *string
	}
	var scans []rosterScan
	if err := ctl.DB.Table("training_enrollments AS e").
		Select("e.user_id, u.full_name, u.email, e.status AS enrollment_status, a.status AS attendance_status").
		Joins("JOIN users u ON u.id = e.user_id").
		Joins("LEFT JOIN attendance a ON a.training_id = e.training_id AND a.user_id = e.user_id AND a.date = ?", date).
		Where("e.training_id = ? AND e.status IN ?", training.ID,
			[]string{trainingModel.EnrollmentStatusApproved, trainingModel.EnrollmentStatusPending}).
		Order("u.full_name ASC").
		Scan(&scans).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	rows := make([]attendanceDTO.RosterRow, 0, len(scans))
	for _, s := range scans {
		status := attendanceModel.AttendanceStatusNotMarked
		if s.AttendanceStatus != nil && *s.AttendanceStatus != "" {
			status = *s.AttendanceStatus
		}
		rows = append(rows, attendanceDTO.RosterRow{
			UserID:           s.UserID,
			Name:             s.FullName,
			Email:            s.Email,
			EnrollmentStatus: s.EnrollmentStatus,
			AttendanceStatus: status,
		})
	}

	return helper.JsonOK(c, "", fiber.Map{
		"trainingId": training.ID,
		"date":       date,
		"attendance": rows,
	})
}

// POST /api/trainings/:id/attendance
//
// Upsert per (training, user, date): menandai ulang tanggal yang sama
// hanya menimpa status, tidak menambah baris.
func (ctl *AttendanceController) Mark(c *fiber.Ctx) error {
	training, fail := ctl.requireActiveTraining(c)
	if fail != nil {
		return fail(c)
	}

	var req attendanceDTO.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "userId and present are required")
	}

	date, err := helper.NormalizeDate(req.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	}

	var enrolled int64
	ctl.DB.Model(&trainingModel.EnrollmentModel{}).
		Where("training_id = ? AND user_id = ? AND status IN ?", training.ID, req.UserID,
			[]string{trainingModel.EnrollmentStatusApproved, trainingModel.EnrollmentStatusPending}).
		Count(&enrolled)
	if enrolled == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Student is not enrolled in this training")
	}

	status := attendanceModel.AttendanceStatusAbsent
	if *req.Present {
		status = attendanceModel.AttendanceStatusPresent
	}

	record := attendanceModel.AttendanceModel{
		TrainingID: training.ID,
		UserID:     req.UserID,
		Date:       date,
		Status:     status,
	}
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "training_id"}, {Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]any{"status": status}),
	}).Create(&record).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark attendance")
	}

	return helper.JsonOK(c, "Attendance marked successfully", attendanceDTO.AttendanceItem{
		ID:         record.ID,
		TrainingID: record.TrainingID,
		UserID:     record.UserID,
		Date:       record.Date,
		Status:     record.Status,
	})
}

// GET /api/trainings/:id/attendance/summary
func (ctl *AttendanceController) GetSummary(c *fiber.Ctx) error {
	training, fail := ctl.requireActiveTraining(c)
	if fail != nil {
		return fail(c)
	}

	// Enrolled dihitung per tanggal: user yang punya baris absensi pada
	// tanggal itu, bukan total enrollment training.
	type summaryScan struct {
		Date     string
		Enrolled int64
		Present  int64
		Absent   int64
	}
	var scans []summaryScan
	if err := ctl.DB.Model(&attendanceModel.AttendanceModel{}).
		Select("date, COUNT(DISTINCT user_id) AS enrolled, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS present, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS absent",
			attendanceModel.AttendanceStatusPresent, attendanceModel.AttendanceStatusAbsent).
		Where("training_id = ?", training.ID).
		Group("date").
		Order("date DESC").
		Scan(&scans).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance summary")
	}

	rows := make([]attendanceDTO.SummaryRow, 0, len(scans))
	for _, s := range scans {
		rows = append(rows, attendanceDTO.SummaryRow{
			Date:     s.Date,
			Enrolled: s.Enrolled,
			Present:  s.Present,
			Absent:   s.Absent,
		})
	}

	return helper.JsonOK(c, "", fiber.Map{
		"trainingId": training.ID,
		"summary":    rows,
	})
}

// requireActiveTraining mengembalikan handler error bila training tidak ada
// atau tidak Active (roster & summary hanya untuk training aktif).
func (ctl *AttendanceController) requireActiveTraining(c *fiber.Ctx) (*trainingModel.TrainingModel, func(*fiber.Ctx) error) {
	trainingID, err := c.ParamsInt("id")
	if err != nil || trainingID <= 0 {
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid training id")
		}
	}

	var training trainingModel.TrainingModel
	if err := ctl.DB.First(&training, trainingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, func(c *fiber.Ctx) error {
				return helper.JsonError(c, fiber.StatusNotFound, "Training not found")
			}
		}
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch training")
		}
	}
	if training.Status != trainingModel.TrainingStatusActive {
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusNotFound, "Training not found or not active")
		}
	}
	return &training, nil
}
