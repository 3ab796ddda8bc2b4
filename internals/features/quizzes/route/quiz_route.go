package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingku_backend/internals/constants"
	quizController "trainingku_backend/internals/features/quizzes/controller"
	authMiddleware "trainingku_backend/internals/middlewares/auth"
)

// QuizRoutes memasang endpoint quiz, soal, dan attempt di bawah /api/quizzes.
func QuizRoutes(api fiber.Router, db *gorm.DB) {
	quizzesCtl := quizController.NewQuizzesController(db)
	questionsCtl := quizController.NewQuizQuestionsController(db)
	attemptsCtl := quizController.NewQuizAttemptsController(db)

	requireAuth := authMiddleware.AuthMiddleware()
	requireTrainer := authMiddleware.OnlyRoles(constants.RoleErrorTrainer("quiz management"), constants.TrainerRoles...)

	quizzes := api.Group("/quizzes", requireAuth)

	// pengelolaan quiz (Trainer/Admin)
	quizzes.Post("/create", requireTrainer, quizzesCtl.Create)
	quizzes.Post("/:quizId/questions", requireTrainer, questionsCtl.Create)
	quizzes.Delete("/questions/:questionId", requireTrainer, questionsCtl.Delete)

	// konsumsi quiz
	quizzes.Get("/training/:trainingId", quizzesCtl.GetByTraining)
	quizzes.Get("/:quizId", quizzesCtl.GetByID)

	// attempt
	quizzes.Post("/:quizId/start", attemptsCtl.Start)
	quizzes.Post("/response", attemptsCtl.SubmitResponse)
	quizzes.Post("/attempt/:attemptId/complete", attemptsCtl.Complete)
	quizzes.Get("/:quizId/results", attemptsCtl.Results)
}
