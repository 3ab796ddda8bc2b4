package controller

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"trainingku_backend/internals/constants"
	trainingDTO "trainingku_backend/internals/features/trainings/dto"
	trainingModel "trainingku_backend/internals/features/trainings/model"
	helper "trainingku_backend/internals/helpers"
)

// MaterialUploadDir bisa dioverride saat test.
var MaterialUploadDir = filepath.Join("uploads", "materials")

type MaterialController struct {
	DB *gorm.DB
}

func NewMaterialController(db *gorm.DB) *MaterialController {
	return &MaterialController{DB: db}
}

// POST /api/trainings/:trainingId/materials
func (ctl *MaterialController) Upload(c *fiber.Ctx) error {
	trainingID, err := c.ParamsInt("trainingId")
	if err != nil || trainingID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid training id")
	}

	var training trainingModel.TrainingModel
	if err := ctl.DB.First(&training, trainingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Training not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch training")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File is required")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = fileHeader.Filename
	}

	if err := os.MkdirAll(MaterialUploadDir, 0o755); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store file")
	}

	ext := filepath.Ext(fileHeader.Filename)
	storedName := uuid.NewString() + ext
	storedPath := filepath.Join(MaterialUploadDir, storedName)
	if err := c.SaveFile(fileHeader, storedPath); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store file")
	}

	material := trainingModel.TrainingMaterialModel{
		TrainingID: training.ID,
		Title:      title,
		FileURL:    storedPath,
	}
	if err := ctl.DB.Create(&material).Error; err != nil {
		os.Remove(storedPath)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save material")
	}

	return helper.JsonCreated(c, "Material uploaded successfully", trainingDTO.MaterialItem{
		ID: material.ID, Title: material.Title, FileURL: material.FileURL,
	})
}

// GET /api/trainings/:trainingId/materials
func (ctl *MaterialController) List(c *fiber.Ctx) error {
	trainingID, err := c.ParamsInt("trainingId")
	if err != nil || trainingID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid training id")
	}

	var count int64
	ctl.DB.Model(&trainingModel.TrainingModel{}).Where("id = ?", trainingID).Count(&count)
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Training not found")
	}

	var materials []trainingModel.TrainingMaterialModel
	if err := ctl.DB.Where("training_id = ?", trainingID).Order("id ASC").Find(&materials).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch materials")
	}

	items := make([]trainingDTO.MaterialItem, 0, len(materials))
	for _, m := range materials {
		items = append(items, trainingDTO.MaterialItem{ID: m.ID, Title: m.Title, FileURL: m.FileURL})
	}
	return helper.JsonOK(c, "", items)
}

// GET /api/trainings/materials/:materialId/download
//
// Hanya peserta terdaftar, trainer pemilik, atau Admin yang boleh mengunduh.
func (ctl *MaterialController) Download(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	materialID, err := c.ParamsInt("materialId")
	if err != nil || materialID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid material id")
	}

	var material trainingModel.TrainingMaterialModel
	if err := ctl.DB.First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Material not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch material")
	}

	if !ctl.canAccess(c, userID, material.TrainingID) {
		return helper.JsonError(c, fiber.StatusForbidden, "You must be enrolled in this training to download materials")
	}

	if _, err := os.Stat(material.FileURL); err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "File not found on server")
	}

	return c.Download(material.FileURL, material.Title+filepath.Ext(material.FileURL))
}

// DELETE /api/trainings/materials/:materialId
func (ctl *MaterialController) Delete(c *fiber.Ctx) error {
	materialID, err := c.ParamsInt("materialId")
	if err != nil || materialID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid material id")
	}

	var material trainingModel.TrainingMaterialModel
	if err := ctl.DB.First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Material not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch material")
	}

	if err := ctl.DB.Delete(&material).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete material")
	}
	os.Remove(material.FileURL)

	return helper.JsonDeleted(c, "Material deleted successfully", fiber.Map{"materialId": material.ID})
}

func (ctl *MaterialController) canAccess(c *fiber.Ctx, userID uint, trainingID uint) bool {
	if helper.GetUserRole(c) == constants.RoleAdmin {
		return true
	}

	var training trainingModel.TrainingModel
	if err := ctl.DB.First(&training, trainingID).Error; err == nil && training.TrainerID == userID {
		return true
	}

	var enrolled int64
	ctl.DB.Model(&trainingModel.EnrollmentModel{}).
		Where("training_id = ? AND user_id = ?", trainingID, userID).
		Count(&enrolled)
	return enrolled > 0
}
