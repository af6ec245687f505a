package models

// OrgRole - роль пользователя в рамках организации.
// Для вычисления состава согласования используются только роли из
// членства в организациях, глобальная роль пользователя не учитывается.
type OrgRole string

const (
	OrgRoleUser       OrgRole = "USER"
	OrgRoleAgent      OrgRole = "AGENT"
	OrgRoleDev        OrgRole = "DEV"
	OrgRoleInfo       OrgRole = "INFO"
	OrgRoleApprover   OrgRole = "APPROVER"
	OrgRoleManagement OrgRole = "MANAGEMENT"
	OrgRoleISB        OrgRole = "ISB"
)

var orgRolePriority = map[OrgRole]int{
	OrgRoleUser:       0,
	OrgRoleAgent:      1,
	OrgRoleDev:        2,
	OrgRoleInfo:       3,
	OrgRoleApprover:   4,
	OrgRoleManagement: 5,
	OrgRoleISB:        6,
}

// Priority - позиция роли в фиксированном порядке приоритета,
// -1 для неизвестной роли.
func (r OrgRole) Priority() int {
	if p, exist := orgRolePriority[r]; exist {
		return p
	}
	return -1
}

func (r OrgRole) IsValid() bool {
	_, exist := orgRolePriority[r]
	return exist
}

var orgRoleHumanName = map[OrgRole]string{
	OrgRoleUser:       "Пользователь",
	OrgRoleAgent:      "Агент",
	OrgRoleDev:        "Разработчик",
	OrgRoleInfo:       "Для информации",
	OrgRoleApprover:   "Согласующий",
	OrgRoleManagement: "Руководство",
	OrgRoleISB:        "Офицер ИБ",
}

func (r OrgRole) ToHuman() string {
	if human, exist := orgRoleHumanName[r]; exist {
		return human
	}
	return string(r)
}

const SystemUser = "Система"
