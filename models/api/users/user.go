package userapimodels

import (
	"github.com/pkg/errors"

	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

type UserData struct {
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	PhoneNumber string         `json:"phone_number"`
	Role        models.OrgRole `json:"role"` // глобальная роль, только для авторизации в api
	IsActive    bool           `json:"is_active"`
}

func (r UserData) Validate() error {
	if r.Email == "" {
		return errors.New("не указан email")
	}
	if !r.Role.IsValid() {
		return errors.Errorf("неизвестная роль %v", r.Role)
	}
	return nil
}

type UserCreateData struct {
	UserData
	Password string `json:"password"`
}

func (r UserCreateData) Validate() error {
	if err := r.UserData.Validate(); err != nil {
		return err
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type UserView struct {
	UserData
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		UserData: UserData{
			Email:       rec.Email,
			FirstName:   rec.FirstName,
			LastName:    rec.LastName,
			PhoneNumber: rec.PhoneNumber,
			Role:        rec.Role,
			IsActive:    rec.IsActive,
		},
		ID:       rec.ID,
		FullName: rec.GetFullName(),
	}
}
