package dbmodels

import "change-tools-backend/models"

type Organization struct {
	BaseModel
	Name string `gorm:"type:varchar(255)"`
}

// OrganizationRoleMembership - роль пользователя в организации.
// Один пользователь может иметь несколько ролей в одной организации.
type OrganizationRoleMembership struct {
	BaseModel
	UserID         string         `gorm:"type:varchar(36);uniqueIndex:idx_org_role_membership"`
	User           *User          `gorm:"foreignKey:UserID"`
	OrganizationID string         `gorm:"type:varchar(36);uniqueIndex:idx_org_role_membership"`
	Organization   *Organization  `gorm:"foreignKey:OrganizationID"`
	Role           models.OrgRole `gorm:"type:varchar(20);uniqueIndex:idx_org_role_membership"`
	IsPrimary      bool
}
