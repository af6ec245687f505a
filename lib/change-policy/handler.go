package changepolicyhandler

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"change-tools-backend/db"
	changepolicystore "change-tools-backend/lib/change-policy/store"
	"change-tools-backend/models"
	policyapimodels "change-tools-backend/models/api/policy"
	dbmodels "change-tools-backend/models/db"
)

type Provider interface {
	// Match подбирает политику согласования: сначала точное совпадение по
	// типу релиза, затем общая политика без типа. Отсутствие политики -
	// штатная ситуация, возвращается nil без ошибки.
	Match(riskLevel models.RiskLevel, securityRelevant bool, releaseType *models.ReleaseType) (*dbmodels.ChangePolicy, error)
	Create(data policyapimodels.PolicyData) (id string, err error)
	Update(id string, data policyapimodels.PolicyData) error
	Delete(id string) error
	GetByID(id string) (item policyapimodels.PolicyView, err error)
	List() (list []policyapimodels.PolicyView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: changepolicystore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: changepolicystore.NewInstance(tx),
	}
}

type impl struct {
	store changepolicystore.Provider
}

func (i impl) Match(riskLevel models.RiskLevel, securityRelevant bool, releaseType *models.ReleaseType) (*dbmodels.ChangePolicy, error) {
	if releaseType != nil {
		rec, err := i.store.FindExact(riskLevel, securityRelevant, *releaseType)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return rec, nil
		}
	}
	return i.store.FindGeneric(riskLevel, securityRelevant)
}

func (i impl) Create(data policyapimodels.PolicyData) (id string, err error) {
	existed, err := i.findByTuple(data)
	if err != nil {
		return "", err
	}
	if existed != nil {
		return "", errors.New("политика для этой комбинации уже существует")
	}
	rec := dbmodels.ChangePolicy{
		RiskLevel:        data.RiskLevel,
		SecurityRelevant: data.SecurityRelevant,
		ReleaseType:      data.ReleaseType,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания политики")
	}
	err = i.store.ReplaceRoles(id, data.Roles)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (i impl) Update(id string, data policyapimodels.PolicyData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("политика не найдена")
	}
	existed, err := i.findByTuple(data)
	if err != nil {
		return err
	}
	if existed != nil && existed.ID != id {
		return errors.New("политика для этой комбинации уже существует")
	}
	rec.RiskLevel = data.RiskLevel
	rec.SecurityRelevant = data.SecurityRelevant
	rec.ReleaseType = data.ReleaseType
	rec.Roles = nil
	_, err = i.store.Create(*rec)
	if err != nil {
		return errors.Wrap(err, "ошибка обновления политики")
	}
	return i.store.ReplaceRoles(id, data.Roles)
}

func (i impl) Delete(id string) error {
	return i.store.Delete(id)
}

func (i impl) GetByID(id string) (policyapimodels.PolicyView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return policyapimodels.PolicyView{}, err
	}
	if rec == nil {
		return policyapimodels.PolicyView{}, errors.New("политика не найдена")
	}
	return policyapimodels.PolicyConvert(*rec), nil
}

func (i impl) List() ([]policyapimodels.PolicyView, error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]policyapimodels.PolicyView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, policyapimodels.PolicyConvert(rec))
	}
	return result, nil
}

func (i impl) findByTuple(data policyapimodels.PolicyData) (*dbmodels.ChangePolicy, error) {
	if data.ReleaseType != nil {
		return i.store.FindExact(data.RiskLevel, data.SecurityRelevant, *data.ReleaseType)
	}
	return i.store.FindGeneric(data.RiskLevel, data.SecurityRelevant)
}
