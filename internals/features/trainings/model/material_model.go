package model

import (
	"time"
)

// TrainingMaterialModel merepresentasikan tabel training_materials.
// File fisik hidup di disk (uploads/materials), baris ini hanya metadata.
type TrainingMaterialModel struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TrainingID uint   `gorm:"index;not null" json:"trainingId"`
	Title      string `gorm:"size:255;not null" json:"title"`
	FileURL    string `gorm:"size:512;not null" json:"fileUrl"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (TrainingMaterialModel) TableName() string {
	return "training_materials"
}
