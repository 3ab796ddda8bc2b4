package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trainingku_backend/internals/constants"
	attendanceModel "trainingku_backend/internals/features/attendance/model"
	trainingModel "trainingku_backend/internals/features/trainings/model"
	userModel "trainingku_backend/internals/features/users/auth/model"
	helper "trainingku_backend/internals/helpers"
	"trainingku_backend/internals/testutil"
)

func seedTraining(t *testing.T, db *gorm.DB, trainer *userModel.UserModel, status string) *trainingModel.TrainingModel {
	t.Helper()
	training := &trainingModel.TrainingModel{
		Title:     "Go untuk Backend",
		TrainerID: trainer.ID,
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
		Capacity:  20,
		Status:    status,
	}
	require.NoError(t, db.Create(training).Error)
	return training
}

func TestEnrollCreatesPendingAndSeedsAttendance(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	trainer := testutil.CreateUser(t, db, "Trainer Satu", "trainer1@example.com", constants.RoleTrainer)
	employee := testutil.CreateUser(t, db, "Employee Satu", "emp1@example.com", "")
	training := seedTraining(t, db, trainer, trainingModel.TrainingStatusActive)

	resp := testutil.DoJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/trainings/%d/enroll", training.ID),
		testutil.TokenFor(t, employee), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var enrollment trainingModel.EnrollmentModel
	require.NoError(t, db.Where("training_id = ? AND user_id = ?", training.ID, employee.ID).
		First(&enrollment).Error)
	assert.Equal(t, trainingModel.EnrollmentStatusPending, enrollment.Status)

	// hari pendaftaran otomatis tercatat hadir
	var seed attendanceModel.AttendanceModel
	require.NoError(t, db.Where("training_id = ? AND user_id = ?", training.ID, employee.ID).
		First(&seed).Error)
	assert.Equal(t, helper.Today(), seed.Date)
	assert.Equal(t, attendanceModel.AttendanceStatusPresent, seed.Status)
}

func TestEnrollRejectsInactiveTraining(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	trainer := testutil.CreateUser(t, db, "Trainer Dua", "trainer2@example.com", constants.RoleTrainer)
	employee := testutil.CreateUser(t, db, "Employee Dua", "emp2@example.com", "")

	for _, status := range []string{
		trainingModel.TrainingStatusUpcoming,
		trainingModel.TrainingStatusCompleted,
		trainingModel.TrainingStatusInactive,
	} {
		training := seedTraining(t, db, trainer, status)
		resp := testutil.DoJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/trainings/%d/enroll", training.ID),
			testutil.TokenFor(t, employee), nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "status=%s", status)
	}
}

func TestEnrollTwiceConflicts(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	trainer := testutil.CreateUser(t, db, "Trainer Tiga", "trainer3@example.com", constants.RoleTrainer)
	employee := testutil.CreateUser(t, db, "Employee Tiga", "emp3@example.com", "")
	training := seedTraining(t, db, trainer, trainingModel.TrainingStatusActive)

	token := testutil.TokenFor(t, employee)
	path := fmt.Sprintf("/api/trainings/%d/enroll", training.ID)

	resp := testutil.DoJSON(t, app, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&trainingModel.EnrollmentModel{}).
		Where("training_id = ? AND user_id = ?", training.ID, employee.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnrollMissingTraining(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	employee := testutil.CreateUser(t, db, "Employee Empat", "emp4@example.com", "")

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/trainings/99999/enroll",
		testutil.TokenFor(t, employee), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEnrollRequiresAuth(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	trainer := testutil.CreateUser(t, db, "Trainer Lima", "trainer5@example.com", constants.RoleTrainer)
	training := seedTraining(t, db, trainer, trainingModel.TrainingStatusActive)

	resp := testutil.DoJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/trainings/%d/enroll", training.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
