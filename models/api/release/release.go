package releaseapimodels

import (
	"github.com/pkg/errors"

	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

type ReleaseData struct {
	Name        string              `json:"name"`
	ReleaseType *models.ReleaseType `json:"release_type"`
}

func (r ReleaseData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано наименование релиза")
	}
	if r.ReleaseType != nil && !r.ReleaseType.IsValid() {
		return errors.Errorf("неизвестный тип релиза %v", *r.ReleaseType)
	}
	return nil
}

type ReleaseView struct {
	ReleaseData
	ID              string `json:"id"`
	ReleaseTypeName string `json:"release_type_name,omitempty"`
}

func ReleaseConvert(rec dbmodels.Release) ReleaseView {
	view := ReleaseView{
		ReleaseData: ReleaseData{
			Name:        rec.Name,
			ReleaseType: rec.ReleaseType,
		},
		ID: rec.ID,
	}
	if rec.ReleaseType != nil {
		view.ReleaseTypeName = rec.ReleaseType.ToHuman()
	}
	return view
}
