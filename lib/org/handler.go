package orghandler

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"change-tools-backend/db"
	orgstore "change-tools-backend/lib/org/store"
	orgrolestore "change-tools-backend/lib/org-role/store"
	usersstore "change-tools-backend/lib/users/store"
	orgapimodels "change-tools-backend/models/api/org"
	dbmodels "change-tools-backend/models/db"
)

type Provider interface {
	Create(data orgapimodels.OrganizationData) (id string, err error)
	Update(id string, data orgapimodels.OrganizationData) error
	Delete(id string) error
	GetByID(id string) (item orgapimodels.OrganizationView, err error)
	List() (list []orgapimodels.OrganizationView, err error)
	GetMembers(orgID string) (list []orgapimodels.MemberView, err error)
	SaveMembers(orgID string, members []orgapimodels.MemberData) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        orgstore.NewInstance(db.DB),
		orgRoleStore: orgrolestore.NewInstance(db.DB),
		usersStore:   usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store        orgstore.Provider
	orgRoleStore orgrolestore.Provider
	usersStore   usersstore.Provider
}

func (i impl) Create(data orgapimodels.OrganizationData) (id string, err error) {
	rec := dbmodels.Organization{
		Name: data.Name,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания организации")
	}
	log.
		WithField("rec_id", id).
		Info("Создана организация")
	return id, nil
}

func (i impl) Update(id string, data orgapimodels.OrganizationData) error {
	updMap := map[string]interface{}{
		"name": data.Name,
	}
	return i.store.Update(id, updMap)
}

func (i impl) Delete(id string) error {
	logger := log.WithField("rec_id", id)
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := orgrolestore.NewInstance(tx).DeleteByOrganization(id)
		if err != nil {
			return err
		}
		return orgstore.NewInstance(tx).Delete(id)
	})
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка удаления организации")
		return err
	}
	logger.Info("удалена организация")
	return nil
}

func (i impl) GetByID(id string) (orgapimodels.OrganizationView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return orgapimodels.OrganizationView{}, err
	}
	if rec == nil {
		return orgapimodels.OrganizationView{}, errors.New("организация не найдена")
	}
	return orgapimodels.OrganizationConvert(*rec), nil
}

func (i impl) List() ([]orgapimodels.OrganizationView, error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]orgapimodels.OrganizationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, orgapimodels.OrganizationConvert(rec))
	}
	return result, nil
}

func (i impl) GetMembers(orgID string) ([]orgapimodels.MemberView, error) {
	recList, err := i.orgRoleStore.ListByOrganization(orgID)
	if err != nil {
		return nil, err
	}
	result := make([]orgapimodels.MemberView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, orgapimodels.MemberConvert(rec))
	}
	return result, nil
}

// SaveMembers пересобирает членство в организации по присланному списку.
func (i impl) SaveMembers(orgID string, members []orgapimodels.MemberData) (hMsg string, err error) {
	orgRec, err := i.store.GetByID(orgID)
	if err != nil {
		return "", err
	}
	if orgRec == nil {
		return "организация не найдена", nil
	}
	seen := map[string]bool{}
	for _, member := range members {
		user, err := i.usersStore.GetByID(member.UserID)
		if err != nil {
			return "", err
		}
		if user == nil {
			return fmt.Sprintf("пользователь %v не найден", member.UserID), nil
		}
		key := member.UserID + ":" + string(member.Role)
		if seen[key] {
			return fmt.Sprintf("роль %v пользователя %v указана дважды", member.Role, user.GetFullName()), nil
		}
		seen[key] = true
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := orgrolestore.NewInstance(tx)
		err := store.DeleteByOrganization(orgID)
		if err != nil {
			return err
		}
		for _, member := range members {
			rec := dbmodels.OrganizationRoleMembership{
				UserID:         member.UserID,
				OrganizationID: orgID,
				Role:           member.Role,
				IsPrimary:      member.IsPrimary,
			}
			_, err = store.Create(rec)
			if err != nil {
				return errors.Wrapf(err, "ошибка сохранения членства, member=%+v", member)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	log.
		WithField("rec_id", orgID).
		Info("обновлено членство организации")
	return "", nil
}
