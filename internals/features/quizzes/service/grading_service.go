package service

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	quizModel "trainingku_backend/internals/features/quizzes/model"
)

// GradeAnswer menilai satu jawaban sesuai tipe soal.
//
//   - multiple-choice: jawaban benar bila sama dengan id opsi yang is_correct.
//   - true-false: dibandingkan dengan kunci correct_answer soal.
//   - short-answer: tidak dinilai otomatis, IsCorrect nil.
func GradeAnswer(db *gorm.DB, question *quizModel.QuizQuestionModel, answer string) (*bool, error) {
	switch question.QuestionType {
	case quizModel.QuestionTypeMultipleChoice:
		return gradeMultipleChoice(db, question.ID, answer)
	case quizModel.QuestionTypeTrueFalse:
		return gradeTrueFalse(question, answer), nil
	default:
		return nil, nil
	}
}

func gradeMultipleChoice(db *gorm.DB, questionID uint, answer string) (*bool, error) {
	answerID, err := strconv.ParseUint(strings.TrimSpace(answer), 10, 64)
	if err != nil {
		return boolPtr(false), nil
	}

	var count int64
	if err := db.Model(&quizModel.QuizOptionModel{}).
		Where("question_id = ? AND id = ? AND is_correct = ?", questionID, uint(answerID), true).
		Count(&count).Error; err != nil {
		return nil, err
	}
	return boolPtr(count > 0), nil
}

func gradeTrueFalse(question *quizModel.QuizQuestionModel, answer string) *bool {
	if question.CorrectAnswer == nil {
		return boolPtr(false)
	}
	given, ok := parseBoolAnswer(answer)
	if !ok {
		return boolPtr(false)
	}
	return boolPtr(given == *question.CorrectAnswer)
}

func parseBoolAnswer(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}

// ComputeScore: persentase jawaban benar dari seluruh respon attempt,
// dibulatkan ke integer terdekat. Tanpa respon skornya 0.
func ComputeScore(correct, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

func boolPtr(b bool) *bool { return &b }
