package db

import (
	log "github.com/sirupsen/logrus"

	"change-tools-backend/config"
	changepolicystore "change-tools-backend/lib/change-policy/store"
	usersstore "change-tools-backend/lib/users/store"
	authutils "change-tools-backend/lib/utils/auth-utils"
	"change-tools-backend/models"
	dbmodels "change-tools-backend/models/db"
)

func InitPreload() {
	addAdminUser()
	fillDefaultPolicies()
}

func addAdminUser() {
	if config.Conf.Admin.Email == "" {
		log.Warn("администратор не добавлен, отсутвует настройка ADMIN_EMAIL")
		return
	}
	store := usersstore.NewInstance(DB)
	existedRec, err := store.FindByEmail(config.Conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	if existedRec != nil {
		return
	}
	rec := dbmodels.User{
		IsActive:    true,
		Role:        models.OrgRoleManagement,
		Password:    authutils.GetMD5Hash(config.Conf.Admin.Password),
		FirstName:   config.Conf.Admin.FirstName,
		LastName:    config.Conf.Admin.LastName,
		Email:       config.Conf.Admin.Email,
		PhoneNumber: config.Conf.Admin.PhoneNumber,
	}
	_, err = store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
	}
}

// fillDefaultPolicies добавляет стартовый набор общих политик согласования,
// только если справочник пуст.
func fillDefaultPolicies() {
	store := changepolicystore.NewInstance(DB)
	existedList, err := store.List()
	if err != nil {
		log.WithError(err).Error("ошибка добавления типовых политик")
		return
	}
	if len(existedList) > 0 {
		return
	}
	defaults := []struct {
		riskLevel        models.RiskLevel
		securityRelevant bool
		roles            []models.OrgRole
	}{
		{models.RiskLevelHigh, false, []models.OrgRole{models.OrgRoleApprover}},
		{models.RiskLevelHigh, true, []models.OrgRole{models.OrgRoleApprover, models.OrgRoleISB}},
		{models.RiskLevelVeryHigh, false, []models.OrgRole{models.OrgRoleApprover, models.OrgRoleManagement}},
		{models.RiskLevelVeryHigh, true, []models.OrgRole{models.OrgRoleApprover, models.OrgRoleManagement, models.OrgRoleISB}},
	}
	for _, item := range defaults {
		rec := dbmodels.ChangePolicy{
			RiskLevel:        item.riskLevel,
			SecurityRelevant: item.securityRelevant,
		}
		id, err := store.Create(rec)
		if err != nil {
			log.WithError(err).Error("ошибка добавления типовых политик")
			return
		}
		err = store.ReplaceRoles(id, item.roles)
		if err != nil {
			log.WithError(err).Error("ошибка добавления типовых политик")
			return
		}
	}
	log.Info("добавлены типовые политики согласования")
}
