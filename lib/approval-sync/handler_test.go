package approvalsynchandler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	approvalrecordstore "change-tools-backend/lib/approval-record/store"
	changepolicyhandler "change-tools-backend/lib/change-policy"
	changestore "change-tools-backend/lib/change/store"
	orgrolehandler "change-tools-backend/lib/org-role"
	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

type fakeChangeStore struct {
	changestore.Provider
	rec *dbmodels.Change
}

func (f fakeChangeStore) GetByID(id string) (*dbmodels.Change, error) {
	if f.rec != nil && f.rec.ID == id {
		return f.rec, nil
	}
	return nil, nil
}

type fakePolicyHandler struct {
	changepolicyhandler.Provider
	policy *dbmodels.ChangePolicy
}

func (f fakePolicyHandler) Match(riskLevel models.RiskLevel, securityRelevant bool, releaseType *models.ReleaseType) (*dbmodels.ChangePolicy, error) {
	return f.policy, nil
}

type membership struct {
	user  dbmodels.User
	orgID string
	role  models.OrgRole
}

type fakeRoleResolver struct {
	orgrolehandler.Provider
	memberships []membership
}

func (f fakeRoleResolver) UsersWithRole(role models.OrgRole, orgIDs []string) ([]dbmodels.User, error) {
	if len(orgIDs) == 0 {
		return nil, nil
	}
	orgSet := map[string]bool{}
	for _, orgID := range orgIDs {
		orgSet[orgID] = true
	}
	seen := map[string]bool{}
	list := []dbmodels.User{}
	for _, m := range f.memberships {
		if m.role != role || !orgSet[m.orgID] || !m.user.IsActive || seen[m.user.ID] {
			continue
		}
		seen[m.user.ID] = true
		list = append(list, m.user)
	}
	return list, nil
}

type fakeRecordStore struct {
	approvalrecordstore.Provider
	seq  int
	recs map[string]dbmodels.ApprovalRecord
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		recs: map[string]dbmodels.ApprovalRecord{},
	}
}

func (f *fakeRecordStore) Create(rec dbmodels.ApprovalRecord) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("rec-%v", f.seq)
	f.recs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeRecordStore) Delete(id string) error {
	delete(f.recs, id)
	return nil
}

func (f *fakeRecordStore) ListByChange(changeID string) ([]dbmodels.ApprovalRecord, error) {
	list := []dbmodels.ApprovalRecord{}
	for _, rec := range f.recs {
		if rec.ChangeID == changeID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeRecordStore) byApprover(userID string, role models.OrgRole) *dbmodels.ApprovalRecord {
	for _, rec := range f.recs {
		if rec.ApproverID == userID && rec.Role == role {
			recCopy := rec
			return &recCopy
		}
	}
	return nil
}

func testUser(id string) dbmodels.User {
	return dbmodels.User{
		BaseModel: dbmodels.BaseModel{ID: id},
		FirstName: id,
		IsActive:  true,
	}
}

func testChange(id string, orgIDs ...string) *dbmodels.Change {
	rec := dbmodels.Change{
		BaseModel: dbmodels.BaseModel{ID: id},
		Subject:   "обновление биллинга",
		RiskLevel: models.RiskLevelHigh,
	}
	for _, orgID := range orgIDs {
		rec.Organizations = append(rec.Organizations, dbmodels.Organization{
			BaseModel: dbmodels.BaseModel{ID: orgID},
		})
	}
	return &rec
}

func testPolicy(roles ...models.OrgRole) *dbmodels.ChangePolicy {
	rec := dbmodels.ChangePolicy{
		BaseModel:        dbmodels.BaseModel{ID: "policy-1"},
		RiskLevel:        models.RiskLevelHigh,
		SecurityRelevant: false,
	}
	for _, role := range roles {
		rec.Roles = append(rec.Roles, dbmodels.PolicyRole{
			PolicyID: rec.ID,
			Role:     role,
		})
	}
	return &rec
}

func testStores(change *dbmodels.Change, policy *dbmodels.ChangePolicy, recordStore *fakeRecordStore, memberships ...membership) syncStores {
	return syncStores{
		changeStore:   fakeChangeStore{rec: change},
		policyHandler: fakePolicyHandler{policy: policy},
		roleResolver:  fakeRoleResolver{memberships: memberships},
		recordStore:   recordStore,
	}
}

func testImpl() impl {
	return impl{
		now: func() time.Time {
			return time.Date(2026, 5, 14, 12, 0, 0, 0, time.UTC)
		},
	}
}

func TestSync(t *testing.T) {
	t.Run(`нет политики - только информационные записи`, func(t *testing.T) {
		recordStore := newFakeRecordStore()
		s := testStores(testChange("c1", "org1"), nil, recordStore,
			membership{user: testUser("u-dev"), orgID: "org1", role: models.OrgRoleDev},
			membership{user: testUser("u-info"), orgID: "org1", role: models.OrgRoleInfo},
			membership{user: testUser("u-approver"), orgID: "org1", role: models.OrgRoleApprover},
		)

		result, err := testImpl().sync(s, "c1")
		require.Nil(t, err)
		require.False(t, result.PolicyFound)
		require.Empty(t, result.RequiredRoles)
		require.Equal(t, 2, result.Added)
		require.Equal(t, 0, result.Removed)
		require.Len(t, recordStore.recs, 2)

		rec := recordStore.byApprover("u-dev", models.OrgRoleDev)
		require.NotNil(t, rec)
		require.False(t, rec.IsRequired)
		require.Equal(t, models.ApprovalStatusInfo, rec.Status)
		require.Equal(t, models.ApprovalInfoNote, rec.Notes)
		require.NotNil(t, rec.DecidedAt)

		require.Nil(t, recordStore.byApprover("u-approver", models.OrgRoleApprover))
	})

	t.Run(`политика найдена - требуемые роли в ожидании решения`, func(t *testing.T) {
		recordStore := newFakeRecordStore()
		s := testStores(testChange("c1", "org1"), testPolicy(models.OrgRoleApprover), recordStore,
			membership{user: testUser("u-approver"), orgID: "org1", role: models.OrgRoleApprover},
		)

		result, err := testImpl().sync(s, "c1")
		require.Nil(t, err)
		require.True(t, result.PolicyFound)
		require.Equal(t, []models.OrgRole{models.OrgRoleApprover}, result.RequiredRoles)
		require.Equal(t, 1, result.Added)

		rec := recordStore.byApprover("u-approver", models.OrgRoleApprover)
		require.NotNil(t, rec)
		require.True(t, rec.IsRequired)
		require.Equal(t, models.ApprovalStatusPending, rec.Status)
		require.Nil(t, rec.DecidedAt)
	})

	t.Run(`повторный вызов ничего не меняет`, func(t *testing.T) {
		recordStore := newFakeRecordStore()
		s := testStores(testChange("c1", "org1"), testPolicy(models.OrgRoleApprover), recordStore,
			membership{user: testUser("u-dev"), orgID: "org1", role: models.OrgRoleDev},
			membership{user: testUser("u-approver"), orgID: "org1", role: models.OrgRoleApprover},
		)

		result, err := testImpl().sync(s, "c1")
		require.Nil(t, err)
		require.Equal(t, 2, result.Added)

		result, err = testImpl().sync(s, "c1")
		require.Nil(t, err)
		require.Equal(t, 0, result.Added)
		require.Equal(t, 0, result.Removed)
		require.Len(t, recordStore.recs, 2)
	})

	t.Run(`пользователь покинул организацию - запись без решения удаляется`, func(t *testing.T) {
		recordStore := newFakeRecordStore()
		s := testStores(testChange("c1", "org1"), testPolicy(models.OrgRoleApprover), recordStore,
			membership{user: testUser("u-approver"), orgID: "org1", role: models.OrgRoleApprover},
		)
		_, err := testImpl().sync(s, "c1")
		require.Nil(t, err)

		s.roleResolver = fakeRoleResolver{}
		result, err := testImpl().sync(s, "c1")
		require.Nil(t, err)
		require.Equal(t, 0, result.Added)
		require.Equal(t, 1, result.Removed)
		require.Empty(t, recordStore.recs)
	})

	t.Run(`запись с принятым решением сохраняется`, func(t *testing.T) {
		recordStore := newFakeRecordStore()
		s := testStores(testChange("c1", "org1"), testPolicy(models.OrgRoleApprover), recordStore,
			membership{user: testUser("u-approver"), orgID: "org1", role: models.OrgRoleApprover},
		)
		_, err := testImpl().sync(s, "c1")
		require.Nil(t, err)

		rec := recordStore.byApprover("u-approver", models.OrgRoleApprover)
		require.NotNil(t, rec)
		decidedAt := time.Date(2026, 5, 15, 9, 0, 0, 0, time.UTC)
		rec.Status = models.ApprovalStatusAccept
		rec.DecidedAt = &decidedAt
		recordStore.recs[rec.ID] = *rec

		s.roleResolver = fakeRoleResolver{}
		result, err := testImpl().sync(s, "c1")
		require.Nil(t, err)
		require.Equal(t, 0, result.Removed)

		kept := recordStore.byApprover("u-approver", models.OrgRoleApprover)
		require.NotNil(t, kept)
		require.Equal(t, models.ApprovalStatusAccept, kept.Status)
	})

	t.Run(`изменение без организаций - целевой состав пуст`, func(t *testing.T) {
		recordStore := newFakeRecordStore()
		s := testStores(testChange("c1", "org1"), testPolicy(models.OrgRoleApprover), recordStore,
			membership{user: testUser("u-dev"), orgID: "org1", role: models.OrgRoleDev},
			membership{user: testUser("u-approver"), orgID: "org1", role: models.OrgRoleApprover},
		)
		_, err := testImpl().sync(s, "c1")
		require.Nil(t, err)
		require.Len(t, recordStore.recs, 2)

		// организации изменения сняты, решения по записям не принимались:
		// информационная запись u-dev закрыта в момент создания и остаётся
		s.changeStore = fakeChangeStore{rec: testChange("c1")}
		result, err := testImpl().sync(s, "c1")
		require.Nil(t, err)
		require.Equal(t, 0, result.Added)
		require.Equal(t, 1, result.Removed)
		require.Nil(t, recordStore.byApprover("u-approver", models.OrgRoleApprover))
		require.NotNil(t, recordStore.byApprover("u-dev", models.OrgRoleDev))
	})

	t.Run(`глобальная роль пользователя не участвует`, func(t *testing.T) {
		recordStore := newFakeRecordStore()
		approver := testUser("u1")
		approver.Role = models.OrgRoleApprover // глобальная роль, только для api
		s := testStores(testChange("c1", "org1"), testPolicy(models.OrgRoleApprover), recordStore,
			membership{user: approver, orgID: "org1", role: models.OrgRoleDev},
		)

		result, err := testImpl().sync(s, "c1")
		require.Nil(t, err)
		require.Equal(t, 1, result.Added)
		require.Nil(t, recordStore.byApprover("u1", models.OrgRoleApprover))
		require.NotNil(t, recordStore.byApprover("u1", models.OrgRoleDev))
	})

	t.Run(`неактивный пользователь не назначается`, func(t *testing.T) {
		recordStore := newFakeRecordStore()
		inactive := testUser("u1")
		inactive.IsActive = false
		s := testStores(testChange("c1", "org1"), testPolicy(models.OrgRoleApprover), recordStore,
			membership{user: inactive, orgID: "org1", role: models.OrgRoleApprover},
		)

		result, err := testImpl().sync(s, "c1")
		require.Nil(t, err)
		require.Equal(t, 0, result.Added)
		require.Empty(t, recordStore.recs)
	})

	t.Run(`изменение не найдено`, func(t *testing.T) {
		recordStore := newFakeRecordStore()
		s := testStores(nil, nil, recordStore)

		_, err := testImpl().sync(s, "missing")
		require.NotNil(t, err)
		require.Equal(t, "изменение не найдено", err.Error())
	})
}
