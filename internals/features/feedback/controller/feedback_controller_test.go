package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trainingku_backend/internals/constants"
	feedbackModel "trainingku_backend/internals/features/feedback/model"
	trainingModel "trainingku_backend/internals/features/trainings/model"
	userModel "trainingku_backend/internals/features/users/auth/model"
	"trainingku_backend/internals/testutil"
)

type feedbackFixture struct {
	employee *userModel.UserModel
	training *trainingModel.TrainingModel
	token    string
}

func newFeedbackFixture(t *testing.T, db *gorm.DB) feedbackFixture {
	t.Helper()
	trainer := testutil.CreateUser(t, db, "Trainer Feedback", "tf@example.com", constants.RoleTrainer)
	employee := testutil.CreateUser(t, db, "Citra Peserta", "citra@example.com", "")

	training := &trainingModel.TrainingModel{
		Title:     "Pelatihan Feedback",
		TrainerID: trainer.ID,
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
		Status:    trainingModel.TrainingStatusActive,
	}
	require.NoError(t, db.Create(training).Error)
	require.NoError(t, db.Create(&trainingModel.EnrollmentModel{
		TrainingID: training.ID,
		UserID:     employee.ID,
		Status:     trainingModel.EnrollmentStatusPending,
	}).Error)

	return feedbackFixture{
		employee: employee,
		training: training,
		token:    testutil.TokenFor(t, employee),
	}
}

func TestSubmitFeedbackUpserts(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	fx := newFeedbackFixture(t, db)

	path := fmt.Sprintf("/api/trainings/%d/feedback", fx.training.ID)

	// submit pertama → 201
	resp := testutil.DoJSON(t, app, http.MethodPost, path, fx.token, map[string]any{
		"rating": 4, "comment": "Bagus",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// submit kedua → 200, menimpa yang lama
	resp = testutil.DoJSON(t, app, http.MethodPost, path, fx.token, map[string]any{
		"rating": 2, "comment": "Ternyata biasa saja",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []feedbackModel.FeedbackModel
	require.NoError(t, db.Where("training_id = ? AND user_id = ?", fx.training.ID, fx.employee.ID).
		Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Rating)
	assert.Equal(t, "Ternyata biasa saja", rows[0].CommentText)
}

func TestSubmitFeedbackValidation(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	fx := newFeedbackFixture(t, db)

	path := fmt.Sprintf("/api/trainings/%d/feedback", fx.training.ID)

	for _, rating := range []int{0, 6, -1} {
		resp := testutil.DoJSON(t, app, http.MethodPost, path, fx.token, map[string]any{
			"rating": rating,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "rating=%d", rating)
	}

	// tanpa enrollment → 403
	outsider := testutil.CreateUser(t, db, "Orang Luar", "outsider@example.com", "")
	resp := testutil.DoJSON(t, app, http.MethodPost, path, testutil.TokenFor(t, outsider), map[string]any{
		"rating": 5,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// training tidak ada → 404
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/trainings/99999/feedback", fx.token, map[string]any{
		"rating": 5,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFeedbackStats(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	fx := newFeedbackFixture(t, db)
	other := testutil.CreateUser(t, db, "Dian Peserta", "dian@example.com", "")
	require.NoError(t, db.Create(&trainingModel.EnrollmentModel{
		TrainingID: fx.training.ID,
		UserID:     other.ID,
		Status:     trainingModel.EnrollmentStatusApproved,
	}).Error)

	path := fmt.Sprintf("/api/trainings/%d/feedback", fx.training.ID)

	resp := testutil.DoJSON(t, app, http.MethodPost, path, fx.token, map[string]any{
		"rating": 5, "comment": "Mantap",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = testutil.DoJSON(t, app, http.MethodPost, path, testutil.TokenFor(t, other), map[string]any{
		"rating": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodGet, path, fx.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Stats struct {
			TotalCount    int64           `json:"totalCount"`
			AverageRating float64         `json:"averageRating"`
			Distribution  map[string]int64 `json:"distribution"`
		} `json:"stats"`
		Feedback []struct {
			UserName string `json:"userName"`
			Rating   int    `json:"rating"`
		} `json:"feedback"`
		UserFeedback *struct {
			Rating int `json:"rating"`
		} `json:"userFeedback"`
	}
	testutil.DecodeData(t, resp, &data)

	assert.EqualValues(t, 2, data.Stats.TotalCount)
	assert.InDelta(t, 4.0, data.Stats.AverageRating, 0.001)
	assert.EqualValues(t, 1, data.Stats.Distribution["5"])
	assert.EqualValues(t, 1, data.Stats.Distribution["3"])
	assert.EqualValues(t, 0, data.Stats.Distribution["4"])

	require.Len(t, data.Feedback, 2)
	require.NotNil(t, data.UserFeedback)
	assert.Equal(t, 5, data.UserFeedback.Rating)
}

func TestDeleteFeedbackOwnership(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	fx := newFeedbackFixture(t, db)
	other := testutil.CreateUser(t, db, "Eka Peserta", "eka@example.com", "")

	feedback := feedbackModel.FeedbackModel{
		TrainingID:  fx.training.ID,
		UserID:      fx.employee.ID,
		Rating:      4,
		CommentText: "Oke",
	}
	require.NoError(t, db.Create(&feedback).Error)

	// milik orang lain dan yang tidak ada dijawab 404 yang sama
	resp := testutil.DoJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/trainings/feedback/%d", feedback.ID),
		testutil.TokenFor(t, other), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodDelete,
		"/api/trainings/feedback/99999", fx.token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// pemilik boleh menghapus
	resp = testutil.DoJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/trainings/feedback/%d", feedback.ID), fx.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&feedbackModel.FeedbackModel{}).
		Where("id = ?", feedback.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
