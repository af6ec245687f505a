package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "change-tools-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.Organization{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Organization")
	}
	if err := DB.AutoMigrate(&dbmodels.OrganizationRoleMembership{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры OrganizationRoleMembership")
	}
	if err := DB.AutoMigrate(&dbmodels.Release{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Release")
	}
	if err := DB.AutoMigrate(&dbmodels.Change{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Change")
	}
	if err := DB.AutoMigrate(&dbmodels.ChangePolicy{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ChangePolicy")
	}
	if err := DB.AutoMigrate(&dbmodels.PolicyRole{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры PolicyRole")
	}
	if err := DB.AutoMigrate(&dbmodels.ApprovalRecord{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApprovalRecord")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
