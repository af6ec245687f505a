package dbmodels

import "change-tools-backend/models"

// ChangePolicy - политика согласования.
// Уникальна по (risk_level, security_relevant, release_type), включая
// общий вариант с release_type = NULL.
type ChangePolicy struct {
	BaseModel
	RiskLevel        models.RiskLevel `gorm:"type:varchar(20);uniqueIndex:idx_change_policy"`
	SecurityRelevant bool             `gorm:"uniqueIndex:idx_change_policy"`
	ReleaseType      *models.ReleaseType `gorm:"type:varchar(20);uniqueIndex:idx_change_policy"`
	Roles            []PolicyRole        `gorm:"foreignKey:PolicyID"`
}

func (r ChangePolicy) RoleList() []models.OrgRole {
	list := make([]models.OrgRole, 0, len(r.Roles))
	for _, policyRole := range r.Roles {
		list = append(list, policyRole.Role)
	}
	return list
}

// PolicyRole - роль, требуемая политикой для согласования.
type PolicyRole struct {
	BaseModel
	PolicyID string         `gorm:"type:varchar(36);uniqueIndex:idx_policy_role"`
	Role     models.OrgRole `gorm:"type:varchar(20);uniqueIndex:idx_policy_role"`
}
