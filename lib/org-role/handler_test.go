package orgrolehandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	orgrolestore "change-tools-backend/lib/org-role/store"
	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

type fakeOrgRoleStore struct {
	orgrolestore.Provider
	memberships []dbmodels.OrganizationRoleMembership
	users       map[string]dbmodels.User
}

func (f fakeOrgRoleStore) UsersWithRoleInOrgs(role models.OrgRole, orgIDs []string) ([]dbmodels.User, error) {
	orgSet := map[string]bool{}
	for _, orgID := range orgIDs {
		orgSet[orgID] = true
	}
	seen := map[string]bool{}
	list := []dbmodels.User{}
	for _, m := range f.memberships {
		if m.Role != role || !orgSet[m.OrganizationID] || seen[m.UserID] {
			continue
		}
		user, exist := f.users[m.UserID]
		if !exist || !user.IsActive {
			continue
		}
		seen[m.UserID] = true
		list = append(list, user)
	}
	return list, nil
}

func (f fakeOrgRoleStore) ListRoles(userID string, orgIDs []string) ([]models.OrgRole, error) {
	orgSet := map[string]bool{}
	for _, orgID := range orgIDs {
		orgSet[orgID] = true
	}
	seen := map[models.OrgRole]bool{}
	list := []models.OrgRole{}
	for _, m := range f.memberships {
		if m.UserID != userID || !orgSet[m.OrganizationID] || seen[m.Role] {
			continue
		}
		seen[m.Role] = true
		list = append(list, m.Role)
	}
	return list, nil
}

func (f fakeOrgRoleStore) ListAllRoles(userID string) ([]models.OrgRole, error) {
	seen := map[models.OrgRole]bool{}
	list := []models.OrgRole{}
	for _, m := range f.memberships {
		if m.UserID != userID || seen[m.Role] {
			continue
		}
		seen[m.Role] = true
		list = append(list, m.Role)
	}
	return list, nil
}

func testMembership(userID, orgID string, role models.OrgRole) dbmodels.OrganizationRoleMembership {
	return dbmodels.OrganizationRoleMembership{
		UserID:         userID,
		OrganizationID: orgID,
		Role:           role,
	}
}

func changeWithOrgs(orgIDs ...string) dbmodels.Change {
	rec := dbmodels.Change{}
	for _, orgID := range orgIDs {
		rec.Organizations = append(rec.Organizations, dbmodels.Organization{
			BaseModel: dbmodels.BaseModel{ID: orgID},
		})
	}
	return rec
}

func TestUsersWithRole(t *testing.T) {
	activeUser := dbmodels.User{
		BaseModel: dbmodels.BaseModel{ID: "u1"},
		IsActive:  true,
	}
	inactiveUser := dbmodels.User{
		BaseModel: dbmodels.BaseModel{ID: "u2"},
		IsActive:  false,
	}
	i := impl{
		store: fakeOrgRoleStore{
			memberships: []dbmodels.OrganizationRoleMembership{
				testMembership("u1", "org1", models.OrgRoleApprover),
				testMembership("u1", "org2", models.OrgRoleApprover),
				testMembership("u2", "org1", models.OrgRoleApprover),
			},
			users: map[string]dbmodels.User{
				"u1": activeUser,
				"u2": inactiveUser,
			},
		},
	}

	t.Run(`без организаций результат пуст`, func(t *testing.T) {
		list, err := i.UsersWithRole(models.OrgRoleApprover, nil)
		require.Nil(t, err)
		require.Empty(t, list)
	})

	t.Run(`неактивные пользователи и дубли не попадают в результат`, func(t *testing.T) {
		list, err := i.UsersWithRole(models.OrgRoleApprover, []string{"org1", "org2"})
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "u1", list[0].ID)
	})
}

func TestEffectiveRole(t *testing.T) {
	i := impl{
		store: fakeOrgRoleStore{
			memberships: []dbmodels.OrganizationRoleMembership{
				testMembership("u1", "org1", models.OrgRoleDev),
				testMembership("u1", "org1", models.OrgRoleApprover),
				testMembership("u1", "org2", models.OrgRoleManagement),
				testMembership("u1", "org3", models.OrgRoleISB),
			},
		},
	}

	t.Run(`выбирается старшая роль из организаций изменения`, func(t *testing.T) {
		role, err := i.EffectiveRole("u1", changeWithOrgs("org1", "org2"))
		require.Nil(t, err)
		require.NotNil(t, role)
		require.Equal(t, models.OrgRoleManagement, *role)
	})

	t.Run(`изменение без организаций - учитываются все роли пользователя`, func(t *testing.T) {
		role, err := i.EffectiveRole("u1", changeWithOrgs())
		require.Nil(t, err)
		require.NotNil(t, role)
		require.Equal(t, models.OrgRoleISB, *role)
	})

	t.Run(`ролей нет - nil без ошибки`, func(t *testing.T) {
		role, err := i.EffectiveRole("u-unknown", changeWithOrgs("org1"))
		require.Nil(t, err)
		require.Nil(t, role)
	})
}
