package changestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "change-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Change) (id string, err error)
	GetByID(id string) (rec *dbmodels.Change, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(page, limit int) (list []dbmodels.Change, err error)
	ListCount() (rowCount int64, err error)
	ReplaceOrganizations(changeID string, orgIDs []string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Change) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Change, error) {
	rec := dbmodels.Change{}
	err := i.db.
		Where("id = ?", id).
		Preload("Release").
		Preload("Organizations").
		Preload("Author").
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Change{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("изменение не найдено")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Change{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err := i.db.
		Select(clause.Associations).
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(page, limit int) (list []dbmodels.Change, err error) {
	list = []dbmodels.Change{}
	tx := i.db.
		Preload("Release").
		Preload("Organizations").
		Order("created_at DESC")
	if limit > 0 {
		tx.Limit(limit)
		if page > 1 {
			tx.Offset((page - 1) * limit)
		}
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount() (rowCount int64, err error) {
	err = i.db.
		Model(&dbmodels.Change{}).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) ReplaceOrganizations(changeID string, orgIDs []string) error {
	rec := dbmodels.Change{
		BaseModel: dbmodels.BaseModel{ID: changeID},
	}
	orgs := make([]dbmodels.Organization, 0, len(orgIDs))
	for _, orgID := range orgIDs {
		orgs = append(orgs, dbmodels.Organization{
			BaseModel: dbmodels.BaseModel{ID: orgID},
		})
	}
	return i.db.
		Model(&rec).
		Association("Organizations").
		Replace(orgs)
}
