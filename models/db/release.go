package dbmodels

import "change-tools-backend/models"

type Release struct {
	BaseModel
	Name        string              `gorm:"type:varchar(255)"`
	ReleaseType *models.ReleaseType `gorm:"type:varchar(20)"`
}
