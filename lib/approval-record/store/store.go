package approvalrecordstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "change-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApprovalRecord) (id string, err error)
	GetByID(changeID, id string) (rec *dbmodels.ApprovalRecord, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	DeleteByChange(changeID string) error
	ListByChange(changeID string) (list []dbmodels.ApprovalRecord, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalRecord) (id string, err error) {
	err = i.db.
		Omit("Approver").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(changeID, id string) (*dbmodels.ApprovalRecord, error) {
	rec := dbmodels.ApprovalRecord{}
	err := i.db.
		Where("id = ?", id).
		Where("change_id = ?", changeID).
		Preload("Approver").
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
	err := i.db.
		Model(&dbmodels.ApprovalRecord{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.ApprovalRecord{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) DeleteByChange(changeID string) error {
	err := i.db.
		Where("change_id = ?", changeID).
		Delete(&dbmodels.ApprovalRecord{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByChange(changeID string) (list []dbmodels.ApprovalRecord, err error) {
	list = []dbmodels.ApprovalRecord{}
	err = i.db.
		Where("change_id = ?", changeID).
		Preload("Approver").
		Order("created_at ASC").
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
