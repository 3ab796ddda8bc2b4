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
	"trainingku_backend/internals/testutil"
)

type attendanceFixture struct {
	trainer  *userModel.UserModel
	employee *userModel.UserModel
	training *trainingModel.TrainingModel
	token    string
}

func newAttendanceFixture(t *testing.T, db *gorm.DB) attendanceFixture {
	t.Helper()
	trainer := testutil.CreateUser(t, db, "Trainer Absen", "trainer@example.com", constants.RoleTrainer)
	employee := testutil.CreateUser(t, db, "Agus Peserta", "agus@example.com", "")

	training := &trainingModel.TrainingModel{
		Title:     "Pelatihan Absensi",
		TrainerID: trainer.ID,
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
		Status:    trainingModel.TrainingStatusActive,
	}
	require.NoError(t, db.Create(training).Error)
	require.NoError(t, db.Create(&trainingModel.EnrollmentModel{
		TrainingID: training.ID,
		UserID:     employee.ID,
		Status:     trainingModel.EnrollmentStatusApproved,
	}).Error)

	return attendanceFixture{
		trainer:  trainer,
		employee: employee,
		training: training,
		token:    testutil.TokenFor(t, trainer),
	}
}

func TestRosterShowsNotMarked(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	fx := newAttendanceFixture(t, db)

	resp := testutil.DoJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/trainings/%d/attendance?date=2026-09-02", fx.training.ID), fx.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Date       string `json:"date"`
		Attendance []struct {
			UserID           uint   `json:"userId"`
			Name             string `json:"name"`
			AttendanceStatus string `json:"attendanceStatus"`
			EnrollmentStatus string `json:"enrollmentStatus"`
		} `json:"attendance"`
	}
	testutil.DecodeData(t, resp, &data)
	require.Len(t, data.Attendance, 1)
	assert.Equal(t, fx.employee.ID, data.Attendance[0].UserID)
	assert.Equal(t, attendanceModel.AttendanceStatusNotMarked, data.Attendance[0].AttendanceStatus)
	assert.Equal(t, trainingModel.EnrollmentStatusApproved, data.Attendance[0].EnrollmentStatus)
}

func TestRosterOrderingAndMixedStatuses(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	fx := newAttendanceFixture(t, db)

	// dua peserta tambahan; nama dipilih supaya urutan abjad teruji
	zara := testutil.CreateUser(t, db, "Zara Peserta", "zara@example.com", "")
	andi := testutil.CreateUser(t, db, "Andi Peserta", "andi@example.com", "")
	for _, u := range []uint{zara.ID, andi.ID} {
		require.NoError(t, db.Create(&trainingModel.EnrollmentModel{
			TrainingID: fx.training.ID,
			UserID:     u,
			Status:     trainingModel.EnrollmentStatusApproved,
		}).Error)
	}

	resp := testutil.DoJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/trainings/%d/attendance", fx.training.ID), fx.token, map[string]any{
			"userId": andi.ID, "present": true, "date": "2026-09-03",
		})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/trainings/%d/attendance?date=2026-09-03", fx.training.ID), fx.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Attendance []struct {
			Name             string `json:"name"`
			AttendanceStatus string `json:"attendanceStatus"`
		} `json:"attendance"`
	}
	testutil.DecodeData(t, resp, &data)
	require.Len(t, data.Attendance, 3)

	// urut nama naik; hanya Andi yang sudah ditandai
	assert.Equal(t, "Agus Peserta", data.Attendance[0].Name)
	assert.Equal(t, "Andi Peserta", data.Attendance[1].Name)
	assert.Equal(t, "Zara Peserta", data.Attendance[2].Name)

	assert.Equal(t, attendanceModel.AttendanceStatusNotMarked, data.Attendance[0].AttendanceStatus)
	assert.Equal(t, attendanceModel.AttendanceStatusPresent, data.Attendance[1].AttendanceStatus)
	assert.Equal(t, attendanceModel.AttendanceStatusNotMarked, data.Attendance[2].AttendanceStatus)
}

func TestMarkAttendanceIsIdempotent(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	fx := newAttendanceFixture(t, db)

	path := fmt.Sprintf("/api/trainings/%d/attendance", fx.training.ID)

	resp := testutil.DoJSON(t, app, http.MethodPost, path, fx.token, map[string]any{
		"userId":  fx.employee.ID,
		"present": true,
		"date":    "2026-09-02",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// tandai ulang tanggal yang sama: status berubah, baris tetap satu
	resp = testutil.DoJSON(t, app, http.MethodPost, path, fx.token, map[string]any{
		"userId":  fx.employee.ID,
		"present": false,
		"date":    "2026-09-02",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records []attendanceModel.AttendanceModel
	require.NoError(t, db.Where("training_id = ? AND user_id = ? AND date = ?",
		fx.training.ID, fx.employee.ID, "2026-09-02").Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, attendanceModel.AttendanceStatusAbsent, records[0].Status)
}

func TestMarkAttendanceRejectsNonEnrolled(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	fx := newAttendanceFixture(t, db)
	outsider := testutil.CreateUser(t, db, "Orang Luar", "luar@example.com", "")

	resp := testutil.DoJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/trainings/%d/attendance", fx.training.ID), fx.token, map[string]any{
			"userId":  outsider.ID,
			"present": true,
		})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAttendanceRequiresActiveTraining(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	fx := newAttendanceFixture(t, db)

	require.NoError(t, db.Model(fx.training).
		Update("status", trainingModel.TrainingStatusInactive).Error)

	resp := testutil.DoJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/trainings/%d/attendance", fx.training.ID), fx.token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/trainings/99999/attendance", fx.token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAttendanceSummary(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	fx := newAttendanceFixture(t, db)
	other := testutil.CreateUser(t, db, "Bela Peserta", "bela@example.com", "")
	require.NoError(t, db.Create(&trainingModel.EnrollmentModel{
		TrainingID: fx.training.ID,
		UserID:     other.ID,
		Status:     trainingModel.EnrollmentStatusPending,
	}).Error)

	mark := func(userID uint, present bool, date string) {
		resp := testutil.DoJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/trainings/%d/attendance", fx.training.ID), fx.token, map[string]any{
				"userId": userID, "present": present, "date": date,
			})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	mark(fx.employee.ID, true, "2026-09-01")
	mark(other.ID, false, "2026-09-01")
	mark(fx.employee.ID, true, "2026-09-02")

	resp := testutil.DoJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/trainings/%d/attendance/summary", fx.training.ID), fx.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Summary []struct {
			Date     string `json:"date"`
			Enrolled int64  `json:"enrolled"`
			Present  int64  `json:"present"`
			Absent   int64  `json:"absent"`
		} `json:"summary"`
	}
	testutil.DecodeData(t, resp, &data)
	require.Len(t, data.Summary, 2)

	// urut tanggal menurun; enrolled dihitung per tanggal dari baris
	// absensi, jadi 2026-09-02 (hanya satu peserta ditandai) = 1.
	assert.Equal(t, "2026-09-02", data.Summary[0].Date)
	assert.EqualValues(t, 1, data.Summary[0].Enrolled)
	assert.EqualValues(t, 1, data.Summary[0].Present)
	assert.EqualValues(t, 0, data.Summary[0].Absent)

	assert.Equal(t, "2026-09-01", data.Summary[1].Date)
	assert.EqualValues(t, 2, data.Summary[1].Enrolled)
	assert.EqualValues(t, 1, data.Summary[1].Present)
	assert.EqualValues(t, 1, data.Summary[1].Absent)
}
