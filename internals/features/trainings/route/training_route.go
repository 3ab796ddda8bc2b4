package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingku_backend/internals/constants"
	trainingController "trainingku_backend/internals/features/trainings/controller"
	authMiddleware "trainingku_backend/internals/middlewares/auth"
)

// TrainingRoutes memasang endpoint katalog training, enrollment, dan materi.
func TrainingRoutes(api fiber.Router, db *gorm.DB) {
	trainingCtl := trainingController.NewTrainingController(db)
	enrollmentCtl := trainingController.NewEnrollmentController(db)
	materialCtl := trainingController.NewMaterialController(db)

	requireAuth := authMiddleware.AuthMiddleware()
	requireTrainer := authMiddleware.OnlyRoles(constants.RoleErrorTrainer("training management"), constants.TrainerRoles...)

	trainings := api.Group("/trainings")

	// katalog publik
	trainings.Get("/", trainingCtl.GetAll)

	// materi: path statis harus didaftarkan sebelum /:id
	trainings.Get("/materials/:materialId/download", requireAuth, materialCtl.Download)
	trainings.Delete("/materials/:materialId", requireAuth, requireTrainer, materialCtl.Delete)

	trainings.Get("/:id", requireAuth, trainingCtl.GetByID)
	trainings.Post("/", requireAuth, requireTrainer, trainingCtl.Create)
	trainings.Put("/:id", requireAuth, requireTrainer, trainingCtl.Update)
	trainings.Delete("/:id", requireAuth, requireTrainer, trainingCtl.Delete)

	// enrollment
	trainings.Post("/:id/enroll", requireAuth, enrollmentCtl.Enroll)
	trainings.Get("/:id/enrollments", requireAuth, requireTrainer, enrollmentCtl.ListByTraining)
	trainings.Put("/:id/enrollments/:enrollmentId", requireAuth, requireTrainer, enrollmentCtl.UpdateStatus)

	// materi per training
	trainings.Post("/:trainingId/materials", requireAuth, requireTrainer, materialCtl.Upload)
	trainings.Get("/:trainingId/materials", requireAuth, materialCtl.List)

	// daftar training untuk employee
	api.Get("/employee/trainings", requireAuth, trainingCtl.GetEmployeeTrainings)
}
