package changeapimodels

import (
	"time"

	"github.com/pkg/errors"

	"change-tools-backend/models"
	orgapimodels "change-tools-backend/models/api/org"
	dbmodels "change-tools-backend/models/db"
)

type ChangeData struct {
	Subject          string           `json:"subject"`
	Description      string           `json:"description"`
	RiskLevel        models.RiskLevel `json:"risk_level"`
	SecurityRelevant bool             `json:"security_relevant"`
	ReleaseID        string           `json:"release_id"`
	OrganizationIDs  []string         `json:"organization_ids"`
}

func (r ChangeData) Validate() error {
	if r.Subject == "" {
		return errors.New("не указана тема изменения")
	}
	if !r.RiskLevel.IsValid() {
		return errors.Errorf("неизвестный уровень риска %v", r.RiskLevel)
	}
	seen := map[string]bool{}
	for _, orgID := range r.OrganizationIDs {
		if orgID == "" {
			return errors.New("пустой идентификатор организации")
		}
		if seen[orgID] {
			return errors.New("организация указана дважды")
		}
		seen[orgID] = true
	}
	return nil
}

type ChangeView struct {
	ChangeData
	ID            string                          `json:"id"`
	AuthorName    string                          `json:"author_name"`
	ReleaseName   string                          `json:"release_name,omitempty"`
	RiskLevelName string                          `json:"risk_level_name"`
	Organizations []orgapimodels.OrganizationView `json:"organizations"`
	CreatedAt     time.Time                       `json:"created_at"`
}

func ChangeConvert(rec dbmodels.Change) ChangeView {
	authorName := ""
	if rec.Author != nil {
		authorName = rec.Author.GetFullName()
	}
	releaseID := ""
	releaseName := ""
	if rec.ReleaseID != nil {
		releaseID = *rec.ReleaseID
	}
	if rec.Release != nil {
		releaseName = rec.Release.Name
	}
	orgs := make([]orgapimodels.OrganizationView, 0, len(rec.Organizations))
	for _, org := range rec.Organizations {
		orgs = append(orgs, orgapimodels.OrganizationConvert(org))
	}
	return ChangeView{
		ChangeData: ChangeData{
			Subject:          rec.Subject,
			Description:      rec.Description,
			RiskLevel:        rec.RiskLevel,
			SecurityRelevant: rec.SecurityRelevant,
			ReleaseID:        releaseID,
			OrganizationIDs:  rec.OrganizationIDs(),
		},
		ID:            rec.ID,
		AuthorName:    authorName,
		ReleaseName:   releaseName,
		RiskLevelName: rec.RiskLevel.ToHuman(),
		Organizations: orgs,
		CreatedAt:     rec.CreatedAt,
	}
}
