package changehandler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"change-tools-backend/db"
	approvalrecordstore "change-tools-backend/lib/approval-record/store"
	approvalsynchandler "change-tools-backend/lib/approval-sync"
	changestore "change-tools-backend/lib/change/store"
	orgstore "change-tools-backend/lib/org/store"
	orgrolehandler "change-tools-backend/lib/org-role"
	releasestore "change-tools-backend/lib/release/store"
	"change-tools-backend/lib/utils/lock"
	apimodels "change-tools-backend/models/api"
	changeapimodels "change-tools-backend/models/api/change"
	dbmodels "change-tools-backend/models/db"
)

// Пересборка состава согласования по одному изменению выполняется строго
// последовательно, параллельные вызовы сериализуются блокировкой по ключу.
const syncLockWait = 10 * time.Second

type Provider interface {
	Create(userID string, data changeapimodels.ChangeData) (id string, syncResult approvalsynchandler.SyncResult, err error)
	Update(id string, data changeapimodels.ChangeData) (syncResult approvalsynchandler.SyncResult, err error)
	GetByID(id string) (item changeapimodels.ChangeView, err error)
	List(pg apimodels.Pagination) (list []changeapimodels.ChangeView, rowCount int64, err error)
	Delete(id string) error
	Sync(id string) (syncResult approvalsynchandler.SyncResult, err error)
	EffectiveRole(id, userID string) (item changeapimodels.EffectiveRoleView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        changestore.NewInstance(db.DB),
		orgStore:     orgstore.NewInstance(db.DB),
		releaseStore: releasestore.NewInstance(db.DB),
		recordStore:  approvalrecordstore.NewInstance(db.DB),
	}
}

type impl struct {
	store        changestore.Provider
	orgStore     orgstore.Provider
	releaseStore releasestore.Provider
	recordStore  approvalrecordstore.Provider
}

func (i impl) checkDependency(data changeapimodels.ChangeData) error {
	if data.ReleaseID != "" {
		releaseRec, err := i.releaseStore.GetByID(data.ReleaseID)
		if err != nil {
			return err
		}
		if releaseRec == nil {
			return errors.New("релиз не найден")
		}
	}
	for _, orgID := range data.OrganizationIDs {
		orgRec, err := i.orgStore.GetByID(orgID)
		if err != nil {
			return err
		}
		if orgRec == nil {
			return errors.Errorf("организация %v не найдена", orgID)
		}
	}
	return nil
}

func (i impl) Create(userID string, data changeapimodels.ChangeData) (id string, syncResult approvalsynchandler.SyncResult, err error) {
	logger := log.WithField("author_id", userID)
	err = i.checkDependency(data)
	if err != nil {
		return "", approvalsynchandler.SyncResult{}, err
	}
	rec := dbmodels.Change{
		Subject:          data.Subject,
		Description:      data.Description,
		AuthorID:         userID,
		RiskLevel:        data.RiskLevel,
		SecurityRelevant: data.SecurityRelevant,
	}
	if data.ReleaseID != "" {
		rec.ReleaseID = &data.ReleaseID
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := changestore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			logger.
				WithError(err).
				Error("Ошибка создания изменения")
			return err
		}
		return store.ReplaceOrganizations(id, data.OrganizationIDs)
	})
	if err != nil {
		return "", approvalsynchandler.SyncResult{}, err
	}
	logger.
		WithField("rec_id", id).
		Info("Создано изменение")
	syncResult, err = i.Sync(id)
	if err != nil {
		return "", approvalsynchandler.SyncResult{}, err
	}
	return id, syncResult, nil
}

func (i impl) Update(id string, data changeapimodels.ChangeData) (syncResult approvalsynchandler.SyncResult, err error) {
	logger := log.WithField("rec_id", id)
	err = i.checkDependency(data)
	if err != nil {
		return approvalsynchandler.SyncResult{}, err
	}
	updMap := map[string]interface{}{
		"subject":           data.Subject,
		"description":       data.Description,
		"risk_level":        data.RiskLevel,
		"security_relevant": data.SecurityRelevant,
	}
	if data.ReleaseID != "" {
		updMap["release_id"] = data.ReleaseID
	} else {
		updMap["release_id"] = nil
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := changestore.NewInstance(tx)
		err := store.Update(id, updMap)
		if err != nil {
			return err
		}
		return store.ReplaceOrganizations(id, data.OrganizationIDs)
	})
	if err != nil {
		return approvalsynchandler.SyncResult{}, err
	}
	logger.Info("обновлено изменение")
	return i.Sync(id)
}

func (i impl) GetByID(id string) (changeapimodels.ChangeView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return changeapimodels.ChangeView{}, err
	}
	return changeapimodels.ChangeConvert(*rec), nil
}

func (i impl) List(pg apimodels.Pagination) (list []changeapimodels.ChangeView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount()
	if err != nil {
		return nil, 0, err
	}
	page, limit := pg.GetPage()
	recList, err := i.store.List(page, limit)
	if err != nil {
		return nil, 0, err
	}
	list = make([]changeapimodels.ChangeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, changeapimodels.ChangeConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Delete(id string) error {
	logger := log.WithField("rec_id", id)
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := approvalrecordstore.NewInstance(tx).DeleteByChange(id)
		if err != nil {
			return err
		}
		return changestore.NewInstance(tx).Delete(id)
	})
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка удаления изменения")
		return err
	}
	logger.Info("удалено изменение")
	return nil
}

// Sync пересобирает состав согласования под блокировкой по изменению.
func (i impl) Sync(id string) (syncResult approvalsynchandler.SyncResult, err error) {
	locked, err := lock.WithDelay(context.Background(), "change_sync:"+id, syncLockWait, func() error {
		result, syncErr := approvalsynchandler.Instance.Sync(id)
		if syncErr != nil {
			return syncErr
		}
		syncResult = result
		return nil
	})
	if err != nil {
		return approvalsynchandler.SyncResult{}, err
	}
	if !locked {
		return approvalsynchandler.SyncResult{}, errors.New("согласование уже пересобирается, повторите позже")
	}
	return syncResult, nil
}

func (i impl) EffectiveRole(id, userID string) (changeapimodels.EffectiveRoleView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return changeapimodels.EffectiveRoleView{}, err
	}
	role, err := orgrolehandler.Instance.EffectiveRole(userID, *rec)
	if err != nil {
		return changeapimodels.EffectiveRoleView{}, err
	}
	view := changeapimodels.EffectiveRoleView{
		Role: role,
	}
	if role != nil {
		view.RoleName = role.ToHuman()
	}
	return view, nil
}

func (i impl) getRec(id string) (*dbmodels.Change, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("изменение не найдено")
	}
	return rec, nil
}
