package approvalhandler

import (
	"time"

	log "github.com/sirupsen/logrus"

	"change-tools-backend/db"
	approvalrecordstore "change-tools-backend/lib/approval-record/store"
	"change-tools-backend/models"
	changeapimodels "change-tools-backend/models/api/change"
)

// Решения по записям согласования принимаются людьми через api.
// Пересборка состава (approval-sync) такие записи не трогает.
type Provider interface {
	List(changeID string) (list []changeapimodels.ApprovalRecordView, err error)
	Accept(changeID, recID, userID string, data changeapimodels.ApprovalDecision) (hMsg string, err error)
	Reject(changeID, recID, userID string, data changeapimodels.ApprovalDecision) (hMsg string, err error)
	Abstain(changeID, recID, userID string, data changeapimodels.ApprovalDecision) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: approvalrecordstore.NewInstance(db.DB),
		now:   time.Now,
	}
}

type impl struct {
	store approvalrecordstore.Provider
	now   func() time.Time
}

func (i impl) List(changeID string) ([]changeapimodels.ApprovalRecordView, error) {
	recList, err := i.store.ListByChange(changeID)
	if err != nil {
		return nil, err
	}
	result := make([]changeapimodels.ApprovalRecordView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, changeapimodels.ApprovalRecordConvert(rec))
	}
	return result, nil
}

func (i impl) Accept(changeID, recID, userID string, data changeapimodels.ApprovalDecision) (string, error) {
	return i.decide(changeID, recID, userID, models.ApprovalStatusAccept, data.Comment)
}

func (i impl) Reject(changeID, recID, userID string, data changeapimodels.ApprovalDecision) (string, error) {
	if err := data.ValidateComment(); err != nil {
		return err.Error(), nil
	}
	return i.decide(changeID, recID, userID, models.ApprovalStatusReject, data.Comment)
}

func (i impl) Abstain(changeID, recID, userID string, data changeapimodels.ApprovalDecision) (string, error) {
	return i.decide(changeID, recID, userID, models.ApprovalStatusAbstained, data.Comment)
}

func (i impl) decide(changeID, recID, userID string, status models.ApprovalStatus, comment string) (hMsg string, err error) {
	logger := log.
		WithField("change_id", changeID).
		WithField("rec_id", recID).
		WithField("user_id", userID)
	rec, err := i.store.GetByID(changeID, recID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "запись согласования не найдена", nil
	}
	if rec.ApproverID != userID {
		return "решение может принять только назначенный согласующий", nil
	}
	if rec.DecidedAt != nil {
		return "решение по записи уже принято", nil
	}
	now := i.now()
	updMap := map[string]interface{}{
		"status":     status,
		"decided_at": now,
		"notes":      comment,
	}
	err = i.store.Update(recID, updMap)
	if err != nil {
		return "", err
	}
	logger.
		WithField("status", status).
		Info("принято решение по согласованию")
	return "", nil
}
