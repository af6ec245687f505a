package changeapimodels

import (
	"time"

	"github.com/pkg/errors"

	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

type ApprovalRecordView struct {
	ID           string                `json:"id"`
	ApproverID   string                `json:"approver_id"`
	ApproverName string                `json:"approver_name"`
	Role         models.OrgRole        `json:"role"`
	RoleName     string                `json:"role_name"`
	IsRequired   bool                  `json:"is_required"`
	Status       models.ApprovalStatus `json:"status"`
	StatusName   string                `json:"status_name"`
	DecidedAt    *time.Time            `json:"decided_at"`
	Notes        string                `json:"notes"`
}

func ApprovalRecordConvert(rec dbmodels.ApprovalRecord) ApprovalRecordView {
	approverName := ""
	if rec.Approver != nil {
		approverName = rec.Approver.GetFullName()
	}
	return ApprovalRecordView{
		ID:           rec.ID,
		ApproverID:   rec.ApproverID,
		ApproverName: approverName,
		Role:         rec.Role,
		RoleName:     rec.Role.ToHuman(),
		IsRequired:   rec.IsRequired,
		Status:       rec.Status,
		StatusName:   rec.Status.ToHuman(),
		DecidedAt:    rec.DecidedAt,
		Notes:        rec.Notes,
	}
}

type ApprovalDecision struct {
	Comment string `json:"comment"`
}

func (r ApprovalDecision) Validate() error {
	return nil
}

func (r ApprovalDecision) ValidateComment() error {
	if r.Comment == "" {
		return errors.New("отсутствует комментарий")
	}
	return nil
}

type EffectiveRoleView struct {
	Role     *models.OrgRole `json:"role"`
	RoleName string          `json:"role_name,omitempty"`
}
