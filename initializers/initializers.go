package initializers

import (
	"change-tools-backend/config"
	"change-tools-backend/fiberlog"
	approvalhandler "change-tools-backend/lib/approval"
	approvalsynchandler "change-tools-backend/lib/approval-sync"
	authhandler "change-tools-backend/lib/auth"
	changehandler "change-tools-backend/lib/change"
	changepolicyhandler "change-tools-backend/lib/change-policy"
	orghandler "change-tools-backend/lib/org"
	orgrolehandler "change-tools-backend/lib/org-role"
	releasehandler "change-tools-backend/lib/release"
	usershandler "change-tools-backend/lib/users"
)

var LoggerConfig *fiberlog.Config

func InitAllServices() {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	usershandler.NewHandler()
	authhandler.NewHandler()
	orghandler.NewHandler()
	orgrolehandler.NewHandler()
	releasehandler.NewHandler()
	changepolicyhandler.NewHandler()
	approvalsynchandler.NewHandler()
	approvalhandler.NewHandler()
	changehandler.NewHandler()
}
