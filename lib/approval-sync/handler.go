package approvalsynchandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"change-tools-backend/db"
	approvalrecordstore "change-tools-backend/lib/approval-record/store"
	changepolicyhandler "change-tools-backend/lib/change-policy"
	changestore "change-tools-backend/lib/change/store"
	orgrolehandler "change-tools-backend/lib/org-role"
	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

// SyncResult - итог пересборки состава согласования.
type SyncResult struct {
	PolicyFound   bool             `json:"policy_found"`
	RequiredRoles []models.OrgRole `json:"required_roles"`
	Added         int              `json:"added"`
	Removed       int              `json:"removed"`
}

type Provider interface {
	// Sync приводит записи согласования изменения к составу, требуемому
	// политикой и ролями в организациях изменения. Выполняется в одной
	// транзакции, повторный вызов без изменения данных ничего не меняет.
	// Запись с принятым решением не удаляется.
	Sync(changeID string) (result SyncResult, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		db:  db.DB,
		now: time.Now,
	}
}

type impl struct {
	db  *gorm.DB
	now func() time.Time
}

// approverKey - ключ записи согласования в рамках изменения.
type approverKey struct {
	UserID string
	Role   models.OrgRole
}

type syncStores struct {
	changeStore   changestore.Provider
	policyHandler changepolicyhandler.Provider
	roleResolver  orgrolehandler.Provider
	recordStore   approvalrecordstore.Provider
}

func newSyncStores(tx *gorm.DB) syncStores {
	return syncStores{
		changeStore:   changestore.NewInstance(tx),
		policyHandler: changepolicyhandler.NewHandlerWithTx(tx),
		roleResolver:  orgrolehandler.NewHandlerWithTx(tx),
		recordStore:   approvalrecordstore.NewInstance(tx),
	}
}

func (i impl) Sync(changeID string) (result SyncResult, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		res, err := i.sync(newSyncStores(tx), changeID)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return SyncResult{}, err
	}
	return result, nil
}

func (i impl) sync(s syncStores, changeID string) (SyncResult, error) {
	logger := log.WithField("change_id", changeID)
	change, err := s.changeStore.GetByID(changeID)
	if err != nil {
		return SyncResult{}, err
	}
	if change == nil {
		return SyncResult{}, errors.New("изменение не найдено")
	}

	target, requiredRoles, policy, err := i.computeTarget(s, *change)
	if err != nil {
		return SyncResult{}, err
	}

	existing, err := s.recordStore.ListByChange(changeID)
	if err != nil {
		return SyncResult{}, err
	}
	existingMap := make(map[approverKey]dbmodels.ApprovalRecord, len(existing))
	for _, rec := range existing {
		existingMap[approverKey{UserID: rec.ApproverID, Role: rec.Role}] = rec
	}

	result := SyncResult{
		PolicyFound:   policy != nil,
		RequiredRoles: requiredRoles,
	}

	// добавляем недостающие записи
	for key := range target {
		if _, exist := existingMap[key]; exist {
			continue
		}
		rec := i.newRecord(changeID, key)
		_, err = s.recordStore.Create(rec)
		if err != nil {
			return SyncResult{}, errors.Wrapf(err, "ошибка создания записи согласования, approver_id=%v, role=%v", key.UserID, key.Role)
		}
		result.Added++
	}

	// удаляем лишние, записи с принятым решением не трогаем
	for key, rec := range existingMap {
		if target[key] {
			continue
		}
		if rec.DecidedAt != nil {
			logger.
				WithField("approver_id", rec.ApproverID).
				WithField("role", rec.Role).
				Info("запись согласования с принятым решением сохранена")
			continue
		}
		err = s.recordStore.Delete(rec.ID)
		if err != nil {
			return SyncResult{}, errors.Wrapf(err, "ошибка удаления записи согласования, approver_id=%v, role=%v", key.UserID, key.Role)
		}
		result.Removed++
	}

	logger.
		WithField("policy_found", result.PolicyFound).
		WithField("added", result.Added).
		WithField("removed", result.Removed).
		Info("состав согласования пересобран")
	return result, nil
}

// computeTarget - целевой состав согласования: пары (пользователь, роль).
// Роли Info и Dev включаются всегда, остальные берутся из подобранной
// политики. Роли берутся только из членства в организациях изменения.
func (i impl) computeTarget(s syncStores, change dbmodels.Change) (map[approverKey]bool, []models.OrgRole, *dbmodels.ChangePolicy, error) {
	logger := log.WithField("change_id", change.ID)
	policy, err := s.policyHandler.Match(change.RiskLevel, change.SecurityRelevant, change.ReleaseType())
	if err != nil {
		return nil, nil, nil, err
	}

	requiredRoles := []models.OrgRole{}
	syncRoles := map[models.OrgRole]bool{
		models.OrgRoleInfo: true,
		models.OrgRoleDev:  true,
	}
	if policy != nil {
		requiredRoles = policy.RoleList()
		for _, role := range requiredRoles {
			syncRoles[role] = true
		}
	} else {
		logger.Info("политика согласования не найдена, назначаются только информационные роли")
	}

	orgIDs := change.OrganizationIDs()
	target := map[approverKey]bool{}
	for role := range syncRoles {
		userList, err := s.roleResolver.UsersWithRole(role, orgIDs)
		if err != nil {
			return nil, nil, nil, err
		}
		if len(userList) == 0 {
			logger.Warnf("нет пользователей с ролью %v в организациях изменения", role)
			continue
		}
		for _, user := range userList {
			target[approverKey{UserID: user.ID, Role: role}] = true
		}
	}
	return target, requiredRoles, policy, nil
}

func (i impl) newRecord(changeID string, key approverKey) dbmodels.ApprovalRecord {
	rec := dbmodels.ApprovalRecord{
		ChangeID:   changeID,
		ApproverID: key.UserID,
		Role:       key.Role,
	}
	switch key.Role {
	case models.OrgRoleInfo, models.OrgRoleDev:
		// информационная запись, закрывается в момент создания
		now := i.now()
		rec.IsRequired = false
		rec.Status = models.ApprovalStatusInfo
		rec.Notes = models.ApprovalInfoNote
		rec.DecidedAt = &now
	default:
		rec.IsRequired = true
		rec.Status = models.ApprovalStatusPending
	}
	return rec
}
