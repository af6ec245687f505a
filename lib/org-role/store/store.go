package orgrolestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.OrganizationRoleMembership) (id string, err error)
	Delete(id string) error
	DeleteByOrganization(orgID string) error
	ListByOrganization(orgID string) (list []dbmodels.OrganizationRoleMembership, err error)
	// UsersWithRoleInOrgs - активные пользователи с ролью role в любой из
	// организаций orgIDs, без дублей. Глобальная роль пользователя не участвует.
	UsersWithRoleInOrgs(role models.OrgRole, orgIDs []string) (list []dbmodels.User, err error)
	ListRoles(userID string, orgIDs []string) (list []models.OrgRole, err error)
	ListAllRoles(userID string) (list []models.OrgRole, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.OrganizationRoleMembership) (id string, err error) {
	err = i.db.
		Omit("User", "Organization").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.OrganizationRoleMembership{
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

func (i impl) DeleteByOrganization(orgID string) error {
	err := i.db.
		Where("organization_id = ?", orgID).
		Delete(&dbmodels.OrganizationRoleMembership{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByOrganization(orgID string) (list []dbmodels.OrganizationRoleMembership, err error) {
	list = []dbmodels.OrganizationRoleMembership{}
	err = i.db.
		Where("organization_id = ?", orgID).
		Preload("User").
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

func (i impl) UsersWithRoleInOrgs(role models.OrgRole, orgIDs []string) (list []dbmodels.User, err error) {
	if len(orgIDs) == 0 {
		return nil, nil
	}
	list = []dbmodels.User{}
	err = i.db.
		Model(&dbmodels.User{}).
		Distinct("users.*").
		Joins("JOIN organization_role_memberships m ON m.user_id = users.id").
		Where("m.role = ?", role).
		Where("m.organization_id IN ?", orgIDs).
		Where("users.is_active = ?", true).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListRoles(userID string, orgIDs []string) (list []models.OrgRole, err error) {
	if len(orgIDs) == 0 {
		return nil, nil
	}
	list = []models.OrgRole{}
	err = i.db.
		Model(&dbmodels.OrganizationRoleMembership{}).
		Distinct("role").
		Where("user_id = ?", userID).
		Where("organization_id IN ?", orgIDs).
		Pluck("role", &list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListAllRoles(userID string) (list []models.OrgRole, err error) {
	list = []models.OrgRole{}
	err = i.db.
		Model(&dbmodels.OrganizationRoleMembership{}).
		Distinct("role").
		Where("user_id = ?", userID).
		Pluck("role", &list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
