package orgrolehandler

import (
	"gorm.io/gorm"

	"change-tools-backend/db"
	orgrolestore "change-tools-backend/lib/org-role/store"
	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

type Provider interface {
	// UsersWithRole - активные пользователи с ролью role в любой из
	// организаций orgIDs. Пустой список организаций дает пустой результат,
	// поиска "по всем организациям" здесь нет.
	UsersWithRole(role models.OrgRole, orgIDs []string) (list []dbmodels.User, err error)
	// EffectiveRole - роль пользователя в контексте изменения, для
	// отображения и аудита. Если у изменения нет организаций, учитываются
	// все роли пользователя. Из подходящих ролей выбирается старшая по
	// фиксированному порядку приоритета.
	EffectiveRole(userID string, change dbmodels.Change) (role *models.OrgRole, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: orgrolestore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: orgrolestore.NewInstance(tx),
	}
}

type impl struct {
	store orgrolestore.Provider
}

func (i impl) UsersWithRole(role models.OrgRole, orgIDs []string) ([]dbmodels.User, error) {
	if len(orgIDs) == 0 {
		return nil, nil
	}
	return i.store.UsersWithRoleInOrgs(role, orgIDs)
}

func (i impl) EffectiveRole(userID string, change dbmodels.Change) (*models.OrgRole, error) {
	orgIDs := change.OrganizationIDs()
	var roleList []models.OrgRole
	var err error
	if len(orgIDs) > 0 {
		roleList, err = i.store.ListRoles(userID, orgIDs)
	} else {
		roleList, err = i.store.ListAllRoles(userID)
	}
	if err != nil {
		return nil, err
	}
	var best *models.OrgRole
	for _, role := range roleList {
		role := role
		if role.Priority() < 0 {
			continue
		}
		if best == nil || role.Priority() > best.Priority() {
			best = &role
		}
	}
	return best, nil
}
