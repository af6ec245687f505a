package changepolicyhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	changepolicystore "change-tools-backend/lib/change-policy/store"
	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

type fakePolicyStore struct {
	changepolicystore.Provider
	policies []dbmodels.ChangePolicy
}

func (f fakePolicyStore) FindExact(riskLevel models.RiskLevel, securityRelevant bool, releaseType models.ReleaseType) (*dbmodels.ChangePolicy, error) {
	for _, rec := range f.policies {
		if rec.RiskLevel != riskLevel || rec.SecurityRelevant != securityRelevant {
			continue
		}
		if rec.ReleaseType != nil && *rec.ReleaseType == releaseType {
			recCopy := rec
			return &recCopy, nil
		}
	}
	return nil, nil
}

func (f fakePolicyStore) FindGeneric(riskLevel models.RiskLevel, securityRelevant bool) (*dbmodels.ChangePolicy, error) {
	for _, rec := range f.policies {
		if rec.RiskLevel != riskLevel || rec.SecurityRelevant != securityRelevant {
			continue
		}
		if rec.ReleaseType == nil {
			recCopy := rec
			return &recCopy, nil
		}
	}
	return nil, nil
}

func TestMatch(t *testing.T) {
	hotfix := models.ReleaseTypeHotfix
	generic := dbmodels.ChangePolicy{
		BaseModel:        dbmodels.BaseModel{ID: "generic"},
		RiskLevel:        models.RiskLevelHigh,
		SecurityRelevant: true,
	}
	exact := dbmodels.ChangePolicy{
		BaseModel:        dbmodels.BaseModel{ID: "exact"},
		RiskLevel:        models.RiskLevelHigh,
		SecurityRelevant: true,
		ReleaseType:      &hotfix,
	}
	i := impl{
		store: fakePolicyStore{policies: []dbmodels.ChangePolicy{generic, exact}},
	}

	t.Run(`точное совпадение по типу релиза приоритетнее общего`, func(t *testing.T) {
		rec, err := i.Match(models.RiskLevelHigh, true, &hotfix)
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "exact", rec.ID)
	})

	t.Run(`нет точного совпадения - берется общая политика`, func(t *testing.T) {
		major := models.ReleaseTypeMajor
		rec, err := i.Match(models.RiskLevelHigh, true, &major)
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "generic", rec.ID)
	})

	t.Run(`без типа релиза ищется только общая политика`, func(t *testing.T) {
		rec, err := i.Match(models.RiskLevelHigh, true, nil)
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "generic", rec.ID)
	})

	t.Run(`политика не найдена - nil без ошибки`, func(t *testing.T) {
		rec, err := i.Match(models.RiskLevelLow, false, &hotfix)
		require.Nil(t, err)
		require.Nil(t, rec)
	})
}
