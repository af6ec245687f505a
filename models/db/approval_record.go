package dbmodels

import (
	"time"

	"change-tools-backend/models"
)

// ApprovalRecord - запись согласования по изменению.
// Ключ записи - (change_id, approver_id, role): один пользователь может
// одновременно иметь две записи по одному изменению в разных ролях.
// Запись с заполненным DecidedAt при пересборке состава не удаляется.
type ApprovalRecord struct {
	BaseModel
	ChangeID   string         `gorm:"type:varchar(36);uniqueIndex:idx_approval_record"`
	ApproverID string         `gorm:"type:varchar(36);uniqueIndex:idx_approval_record"`
	Approver   *User          `gorm:"foreignKey:ApproverID"`
	Role       models.OrgRole `gorm:"type:varchar(20);uniqueIndex:idx_approval_record"`
	IsRequired bool
	Status     models.ApprovalStatus `gorm:"type:varchar(20)"`
	DecidedAt  *time.Time
	Notes      string
}
