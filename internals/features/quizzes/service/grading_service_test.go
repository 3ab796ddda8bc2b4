package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	quizModel "trainingku_backend/internals/features/quizzes/model"
)

func TestComputeScore(t *testing.T) {
	cases := []struct {
		correct int64
		total   int64
		want    int
	}{
		{correct: 3, total: 4, want: 75},
		{correct: 4, total: 4, want: 100},
		{correct: 0, total: 4, want: 0},
		{correct: 2, total: 3, want: 67},
		{correct: 1, total: 3, want: 33},
		{correct: 0, total: 0, want: 0}, // tanpa respon
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_of_%d", tc.correct, tc.total), func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeScore(tc.correct, tc.total))
		})
	}
}

func TestGradeAnswerTrueFalse(t *testing.T) {
	key := true
	question := &quizModel.QuizQuestionModel{
		QuestionType:  quizModel.QuestionTypeTrueFalse,
		CorrectAnswer: &key,
	}

	cases := []struct {
		answer string
		want   bool
	}{
		{"true", true},
		{"True", true},
		{" TRUE ", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"banana", false},
		{"", false},
	}
	for _, tc := range cases {
		got, err := GradeAnswer(nil, question, tc.answer)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, tc.want, *got, "answer=%q", tc.answer)
	}
}

func TestGradeAnswerTrueFalseWithoutKey(t *testing.T) {
	question := &quizModel.QuizQuestionModel{QuestionType: quizModel.QuestionTypeTrueFalse}

	got, err := GradeAnswer(nil, question, "true")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, *got)
}

func TestGradeAnswerShortAnswerIsUngraded(t *testing.T) {
	question := &quizModel.QuizQuestionModel{QuestionType: quizModel.QuestionTypeShortAnswer}

	got, err := GradeAnswer(nil, question, "anything at all")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGradeAnswerMultipleChoice(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:grading_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&quizModel.QuizQuestionModel{}, &quizModel.QuizOptionModel{}))

	question := quizModel.QuizQuestionModel{
		QuizID:       1,
		Question:     "Which option is right?",
		QuestionType: quizModel.QuestionTypeMultipleChoice,
		Options: []quizModel.QuizOptionModel{
			{OptionText: "wrong one", IsCorrect: false},
			{OptionText: "right one", IsCorrect: true},
		},
	}
	require.NoError(t, db.Create(&question).Error)

	correctID := question.Options[1].ID
	wrongID := question.Options[0].ID

	got, err := GradeAnswer(db, &question, fmt.Sprint(correctID))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, *got)

	got, err = GradeAnswer(db, &question, fmt.Sprint(wrongID))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, *got)

	// id tak dikenal / bukan angka → salah, bukan error
	got, err = GradeAnswer(db, &question, "999999")
	require.NoError(t, err)
	assert.False(t, *got)

	got, err = GradeAnswer(db, &question, "not-a-number")
	require.NoError(t, err)
	assert.False(t, *got)
}
