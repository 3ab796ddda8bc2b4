package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainingku_backend/internals/constants"
	userModel "trainingku_backend/internals/features/users/auth/model"
	"trainingku_backend/internals/testutil"
)

func TestRegisterAndDuplicateEmail(t *testing.T) {
	app, db := testutil.NewTestApp(t)

	payload := map[string]any{
		"fullName": "Budi Santoso",
		"email":    "budi@example.com",
		"password": "password123",
	}

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var data struct {
		Token  string `json:"token"`
		UserID uint   `json:"userId"`
		Role   string `json:"role"`
	}
	testutil.DecodeData(t, resp, &data)
	assert.NotEmpty(t, data.Token)
	assert.NotZero(t, data.UserID)
	assert.Equal(t, constants.RoleEmployee, data.Role)

	// email sama → 409, tanpa baris kedua
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Where("email = ?", "budi@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterNormalizesRole(t *testing.T) {
	app, _ := testutil.NewTestApp(t)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"fullName": "Tia Trainer",
		"email":    "tia@example.com",
		"password": "password123",
		"role":     "trainer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var data struct {
		Role string `json:"role"`
	}
	testutil.DecodeData(t, resp, &data)
	assert.Equal(t, constants.RoleTrainer, data.Role)
}

func TestLogin(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	user := testutil.CreateUser(t, db, "Sari Dewi", "sari@example.com", "")

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    user.Email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Token  string `json:"token"`
		UserID uint   `json:"userId"`
	}
	testutil.DecodeData(t, resp, &data)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, user.ID, data.UserID)

	// password salah dan email tak dikenal dijawab sama
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    user.Email,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestForgotAndResetPassword(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	user := testutil.CreateUser(t, db, "Rudi Hartono", "rudi@example.com", "")

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{
		"email": user.Email,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// token mentah tidak bisa diambil dari email di test; hash & expiry
	// harus sudah tersimpan
	var updated userModel.UserModel
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.NotNil(t, updated.ResetPasswordToken)
	require.NotNil(t, updated.ResetPasswordExpires)

	// token ngawur → 400
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/reset-password/not-a-real-token", "", map[string]any{
		"password": "newpassword123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// email tak dikenal → 404
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{
		"email": "ghost@example.com",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProfileRequiresToken(t *testing.T) {
	app, db := testutil.NewTestApp(t)
	user := testutil.CreateUser(t, db, "Ani Wijaya", "ani@example.com", "")

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/auth/profile", testutil.TokenFor(t, user), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
