package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trainingku_backend/internals/configs"
	"trainingku_backend/internals/constants"
	database "trainingku_backend/internals/databases"
	userModel "trainingku_backend/internals/features/users/auth/model"
	authService "trainingku_backend/internals/features/users/auth/service"
	"trainingku_backend/internals/route"
)

var dbCounter atomic.Int64

// NewTestApp membangun aplikasi lengkap (route + middleware auth) di atas
// sqlite in-memory yang terisolasi per test.
func NewTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	configs.JWTSecret = "test-secret"
	configs.ClientURL = "http://localhost:5173"

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New()
	route.SetupRoutes(app, db)
	return app, db
}

// CreateUser menyimpan user langsung ke DB dan mengembalikan modelnya.
func CreateUser(t *testing.T, db *gorm.DB, fullName, email, role string) *userModel.UserModel {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	if role == "" {
		role = constants.RoleEmployee
	}
	user := &userModel.UserModel{
		FullName: fullName,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// TokenFor membuat JWT valid untuk user tersebut.
func TokenFor(t *testing.T, u *userModel.UserModel) string {
	t.Helper()
	token, err := authService.CreateAccessToken(u)
	require.NoError(t, err)
	return token
}

// DoJSON mengirim request JSON ke app dan mengembalikan responsenya.
// Token kosong berarti request anonim.
func DoJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Envelope membongkar body {success, message, data}.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func DecodeEnvelope(t *testing.T, resp *http.Response) Envelope {
	t.Helper()
	defer resp.Body.Close()

	var env Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// DecodeData unmarshal field data envelope ke out.
func DecodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	env := DecodeEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(env.Data, out))
}
