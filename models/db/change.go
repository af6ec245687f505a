package dbmodels

import "change-tools-backend/models"

// Change - изменение, проходящее согласование.
type Change struct {
	BaseModel
	Subject          string `gorm:"type:varchar(255)"`
	Description      string
	AuthorID         string `gorm:"type:varchar(36)"`
	Author           *User  `gorm:"foreignKey:AuthorID"`
	RiskLevel        models.RiskLevel `gorm:"type:varchar(20)"`
	SecurityRelevant bool
	ReleaseID        *string  `gorm:"type:varchar(36)"`
	Release          *Release `gorm:"foreignKey:ReleaseID"`
	Organizations    []Organization `gorm:"many2many:change_organizations"`
}

func (r Change) OrganizationIDs() []string {
	ids := make([]string, 0, len(r.Organizations))
	for _, org := range r.Organizations {
		ids = append(ids, org.ID)
	}
	return ids
}

// ReleaseType - тип релиза изменения, nil если релиз не указан
// или у релиза не задан тип.
func (r Change) ReleaseType() *models.ReleaseType {
	if r.Release == nil {
		return nil
	}
	return r.Release.ReleaseType
}
