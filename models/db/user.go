package dbmodels

import (
	"fmt"

	"change-tools-backend/models"
)

// User - пользователь системы.
// Role - глобальная роль, используется только для авторизации в api.
// Состав согласования по изменению вычисляется исключительно по ролям
// из OrganizationRoleMembership.
type User struct {
	BaseModel
	Password    string `gorm:"type:varchar(128)"`
	FirstName   string `gorm:"type:varchar(150)"`
	LastName    string `gorm:"type:varchar(150)"`
	Email       string `gorm:"type:varchar(255);uniqueIndex"`
	IsActive    bool
	PhoneNumber string         `gorm:"type:varchar(15)"`
	Role        models.OrgRole `gorm:"type:varchar(20)"`
}

func (r User) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}
