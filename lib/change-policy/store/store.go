package changepolicystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ChangePolicy) (id string, err error)
	GetByID(id string) (rec *dbmodels.ChangePolicy, err error)
	Delete(id string) error
	List() (list []dbmodels.ChangePolicy, err error)
	// FindExact - политика с точным совпадением типа релиза.
	FindExact(riskLevel models.RiskLevel, securityRelevant bool, releaseType models.ReleaseType) (rec *dbmodels.ChangePolicy, err error)
	// FindGeneric - общая политика без ограничения по типу релиза.
	FindGeneric(riskLevel models.RiskLevel, securityRelevant bool) (rec *dbmodels.ChangePolicy, err error)
	ReplaceRoles(policyID string, roles []models.OrgRole) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ChangePolicy) (id string, err error) {
	err = i.db.
		Omit("Roles").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ChangePolicy, error) {
	rec := dbmodels.ChangePolicy{}
	err := i.db.
		Where("id = ?", id).
		Preload("Roles").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Delete(id string) error {
	err := i.db.
		Where("policy_id = ?", id).
		Delete(&dbmodels.PolicyRole{}).
		Error
	if err != nil {
		return err
	}
	rec := dbmodels.ChangePolicy{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err = i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List() (list []dbmodels.ChangePolicy, err error) {
	list = []dbmodels.ChangePolicy{}
	err = i.db.
		Preload("Roles").
		Order("risk_level ASC").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) FindExact(riskLevel models.RiskLevel, securityRelevant bool, releaseType models.ReleaseType) (*dbmodels.ChangePolicy, error) {
	rec := dbmodels.ChangePolicy{}
	err := i.db.
		Where("risk_level = ?", riskLevel).
		Where("security_relevant = ?", securityRelevant).
		Where("release_type = ?", releaseType).
		Preload("Roles").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindGeneric(riskLevel models.RiskLevel, securityRelevant bool) (*dbmodels.ChangePolicy, error) {
	rec := dbmodels.ChangePolicy{}
	err := i.db.
		Where("risk_level = ?", riskLevel).
		Where("security_relevant = ?", securityRelevant).
		Where("release_type IS NULL").
		Preload("Roles").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ReplaceRoles(policyID string, roles []models.OrgRole) error {
	err := i.db.
		Where("policy_id = ?", policyID).
		Delete(&dbmodels.PolicyRole{}).
		Error
	if err != nil {
		return err
	}
	for _, role := range roles {
		rec := dbmodels.PolicyRole{
			PolicyID: policyID,
			Role:     role,
		}
		err = i.db.Save(&rec).Error
		if err != nil {
			return errors.Wrapf(err, "ошибка сохранения роли политики %v", role)
		}
	}
	return nil
}
