package models

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelNormal   RiskLevel = "NORMAL"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelVeryHigh RiskLevel = "VERY_HIGH"
)

var riskLevelHumanName = map[RiskLevel]string{
	RiskLevelLow:      "низкий",
	RiskLevelNormal:   "обычный",
	RiskLevelHigh:     "высокий",
	RiskLevelVeryHigh: "очень высокий",
}

func (r RiskLevel) ToHuman() string {
	if human, exist := riskLevelHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r RiskLevel) IsValid() bool {
	_, exist := riskLevelHumanName[r]
	return exist
}

type ReleaseType string

const (
	ReleaseTypeMajor       ReleaseType = "MAJOR"
	ReleaseTypeMinor       ReleaseType = "MINOR"
	ReleaseTypeBugfix      ReleaseType = "BUGFIX"
	ReleaseTypeHotfix      ReleaseType = "HOTFIX"
	ReleaseTypeSecurityfix ReleaseType = "SECURITYFIX"
)

var releaseTypeHumanName = map[ReleaseType]string{
	ReleaseTypeMajor:       "мажорный релиз",
	ReleaseTypeMinor:       "минорный релиз",
	ReleaseTypeBugfix:      "исправление ошибок",
	ReleaseTypeHotfix:      "срочное исправление",
	ReleaseTypeSecurityfix: "исправление безопасности",
}

func (r ReleaseType) ToHuman() string {
	if human, exist := releaseTypeHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r ReleaseType) IsValid() bool {
	_, exist := releaseTypeHumanName[r]
	return exist
}

type ApprovalStatus string

const (
	ApprovalStatusPending   ApprovalStatus = "PENDING"
	ApprovalStatusAccept    ApprovalStatus = "ACCEPT"
	ApprovalStatusReject    ApprovalStatus = "REJECT"
	ApprovalStatusAbstained ApprovalStatus = "ABSTAINED"
	// ApprovalStatusInfo - информационная запись, решение не требуется
	ApprovalStatusInfo ApprovalStatus = "INFO"
)

var approvalStatusHumanName = map[ApprovalStatus]string{
	ApprovalStatusPending:   "ожидает решения",
	ApprovalStatusAccept:    "согласовано",
	ApprovalStatusReject:    "отклонено",
	ApprovalStatusAbstained: "воздержался",
	ApprovalStatusInfo:      "для информации",
}

func (r ApprovalStatus) ToHuman() string {
	if human, exist := approvalStatusHumanName[r]; exist {
		return human
	}
	return string(r)
}

// ApprovalInfoNote - пометка информационной записи согласования
const ApprovalInfoNote = "Nur zur Info"
