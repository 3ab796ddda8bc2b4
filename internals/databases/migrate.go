package database

import (
	"log"

	"gorm.io/gorm"

	attendanceModel "trainingku_backend/internals/features/attendance/model"
	feedbackModel "trainingku_backend/internals/features/feedback/model"
	quizModel "trainingku_backend/internals/features/quizzes/model"
	trainingModel "trainingku_backend/internals/features/trainings/model"
	userModel "trainingku_backend/internals/features/users/auth/model"
)

// Migrate menjalankan AutoMigrate seluruh model lalu memasang index yang
// tidak bisa dinyatakan lewat tag gorm. Index unik di sini adalah penutup
// race window check-then-act (double enroll, double attempt, double
// feedback) — pelanggarannya dipetakan jadi 409 di controller.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&trainingModel.TrainingModel{},
		&trainingModel.EnrollmentModel{},
		&trainingModel.TrainingMaterialModel{},
		&attendanceModel.AttendanceModel{},
		&quizModel.QuizModel{},
		&quizModel.QuizQuestionModel{},
		&quizModel.QuizOptionModel{},
		&quizModel.QuizAttemptModel{},
		&quizModel.QuizResponseModel{},
		&feedbackModel.FeedbackModel{},
	); err != nil {
		return err
	}

	// partial unique index: maksimal satu attempt in_progress per (quiz, user)
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_attempts_active
		 ON quiz_attempts (quiz_id, user_id) WHERE status = 'in_progress'`,
	).Error; err != nil {
		return err
	}

	log.Println("✅ Migrasi selesai.")
	return nil
}
