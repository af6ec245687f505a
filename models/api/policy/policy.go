package policyapimodels

import (
	"github.com/pkg/errors"

	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

type PolicyData struct {
	RiskLevel        models.RiskLevel    `json:"risk_level"`
	SecurityRelevant bool                `json:"security_relevant"`
	ReleaseType      *models.ReleaseType `json:"release_type"`
	Roles            []models.OrgRole    `json:"roles"`
}

func (r PolicyData) Validate() error {
	if !r.RiskLevel.IsValid() {
		return errors.Errorf("неизвестный уровень риска %v", r.RiskLevel)
	}
	if r.ReleaseType != nil && !r.ReleaseType.IsValid() {
		return errors.Errorf("неизвестный тип релиза %v", *r.ReleaseType)
	}
	seen := map[models.OrgRole]bool{}
	for _, role := range r.Roles {
		if !role.IsValid() {
			return errors.Errorf("неизвестная роль %v", role)
		}
		if seen[role] {
			return errors.Errorf("роль %v указана дважды", role)
		}
		seen[role] = true
	}
	return nil
}

type PolicyView struct {
	PolicyData
	ID string `json:"id"`
}

func PolicyConvert(rec dbmodels.ChangePolicy) PolicyView {
	return PolicyView{
		PolicyData: PolicyData{
			RiskLevel:        rec.RiskLevel,
			SecurityRelevant: rec.SecurityRelevant,
			ReleaseType:      rec.ReleaseType,
			Roles:            rec.RoleList(),
		},
		ID: rec.ID,
	}
}
