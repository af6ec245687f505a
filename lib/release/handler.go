package releasehandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"change-tools-backend/db"
	releasestore "change-tools-backend/lib/release/store"
	releaseapimodels "change-tools-backend/models/api/release"
	dbmodels "change-tools-backend/models/db"
)

type Provider interface {
	Create(data releaseapimodels.ReleaseData) (id string, err error)
	Update(id string, data releaseapimodels.ReleaseData) error
	Delete(id string) error
	GetByID(id string) (item releaseapimodels.ReleaseView, err error)
	List() (list []releaseapimodels.ReleaseView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: releasestore.NewInstance(db.DB),
	}
}

type impl struct {
	store releasestore.Provider
}

func (i impl) Create(data releaseapimodels.ReleaseData) (id string, err error) {
	rec := dbmodels.Release{
		Name:        data.Name,
		ReleaseType: data.ReleaseType,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания релиза")
	}
	log.
		WithField("rec_id", id).
		Info("Создан релиз")
	return id, nil
}

// Update меняет атрибуты релиза. Тип релиза участвует в подборе политики,
// поэтому изменения по уже привязанным изменениям подхватываются их
// следующей пересборкой.
func (i impl) Update(id string, data releaseapimodels.ReleaseData) error {
	updMap := map[string]interface{}{
		"name":         data.Name,
		"release_type": data.ReleaseType,
	}
	return i.store.Update(id, updMap)
}

func (i impl) Delete(id string) error {
	return i.store.Delete(id)
}

func (i impl) GetByID(id string) (releaseapimodels.ReleaseView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return releaseapimodels.ReleaseView{}, err
	}
	if rec == nil {
		return releaseapimodels.ReleaseView{}, errors.New("релиз не найден")
	}
	return releaseapimodels.ReleaseConvert(*rec), nil
}

func (i impl) List() ([]releaseapimodels.ReleaseView, error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]releaseapimodels.ReleaseView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, releaseapimodels.ReleaseConvert(rec))
	}
	return result, nil
}
