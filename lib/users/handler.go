package usershandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"change-tools-backend/db"
	usersstore "change-tools-backend/lib/users/store"
	authutils "change-tools-backend/lib/utils/auth-utils"
	apimodels "change-tools-backend/models/api"
	userapimodels "change-tools-backend/models/api/users"
	dbmodels "change-tools-backend/models/db"
)

type Provider interface {
	Create(data userapimodels.UserCreateData) (id string, err error)
	Update(id string, data userapimodels.UserData) error
	Delete(id string) error
	GetByID(id string) (item userapimodels.UserView, err error)
	List(pg apimodels.Pagination) (list []userapimodels.UserView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Create(data userapimodels.UserCreateData) (id string, err error) {
	exist, err := i.store.ExistByEmail(data.Email)
	if err != nil {
		return "", err
	}
	if exist {
		return "", errors.New("пользователь с таким email уже существует")
	}
	rec := dbmodels.User{
		Password:    authutils.GetMD5Hash(data.Password),
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Email:       data.Email,
		PhoneNumber: data.PhoneNumber,
		IsActive:    data.IsActive,
		Role:        data.Role,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания пользователя")
	}
	log.
		WithField("rec_id", id).
		Info("Создан пользователь")
	return id, nil
}

func (i impl) Update(id string, data userapimodels.UserData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("пользователь не найден")
	}
	if rec.Email != data.Email {
		exist, err := i.store.ExistByEmail(data.Email)
		if err != nil {
			return err
		}
		if exist {
			return errors.New("пользователь с таким email уже существует")
		}
	}
	updMap := map[string]interface{}{
		"email":        data.Email,
		"first_name":   data.FirstName,
		"last_name":    data.LastName,
		"phone_number": data.PhoneNumber,
		"is_active":    data.IsActive,
		"role":         data.Role,
	}
	return i.store.Update(id, updMap)
}

func (i impl) Delete(id string) error {
	return i.store.Delete(id)
}

func (i impl) GetByID(id string) (userapimodels.UserView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	if rec == nil {
		return userapimodels.UserView{}, errors.New("пользователь не найден")
	}
	return userapimodels.UserConvert(*rec), nil
}

func (i impl) List(pg apimodels.Pagination) ([]userapimodels.UserView, error) {
	page, limit := pg.GetPage()
	recList, err := i.store.GetList(page, limit)
	if err != nil {
		return nil, err
	}
	result := make([]userapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, userapimodels.UserConvert(rec))
	}
	return result, nil
}
