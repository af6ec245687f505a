package orgapimodels

import (
	"github.com/pkg/errors"

	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

type OrganizationData struct {
	Name string `json:"name"`
}

func (r OrganizationData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано наименование организации")
	}
	return nil
}

type OrganizationView struct {
	OrganizationData
	ID string `json:"id"`
}

func OrganizationConvert(rec dbmodels.Organization) OrganizationView {
	return OrganizationView{
		OrganizationData: OrganizationData{
			Name: rec.Name,
		},
		ID: rec.ID,
	}
}

type MemberData struct {
	UserID    string         `json:"user_id"`
	Role      models.OrgRole `json:"role"`
	IsPrimary bool           `json:"is_primary"`
}

func (r MemberData) Validate() error {
	if r.UserID == "" {
		return errors.New("не указан идентификатор пользователя")
	}
	if !r.Role.IsValid() {
		return errors.Errorf("неизвестная роль %v", r.Role)
	}
	return nil
}

type Members struct {
	Members []MemberData `json:"members"`
}

func (r Members) Validate() error {
	for _, item := range r.Members {
		err := item.Validate()
		if err != nil {
			return err
		}
	}
	return nil
}

type MemberView struct {
	MemberData
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	RoleName string `json:"role_name"`
}

func MemberConvert(rec dbmodels.OrganizationRoleMembership) MemberView {
	userName := ""
	if rec.User != nil {
		userName = rec.User.GetFullName()
	}
	return MemberView{
		MemberData: MemberData{
			UserID:    rec.UserID,
			Role:      rec.Role,
			IsPrimary: rec.IsPrimary,
		},
		ID:       rec.ID,
		UserName: userName,
		RoleName: rec.Role.ToHuman(),
	}
}
