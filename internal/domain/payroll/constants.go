package payroll

const (
	CategoryEarning   = "EARNING"
	CategoryDeduction = "DEDUCTION"

	CodeBasic    = "BASIC"
	CodeOvertime = "OVERTIME"
	CodeTax      = "TAX"
	CodeAOVAWW   = "AOV_AWW"
	CodeKorting  = "KORTING"
	CodeBVZ      = "BVZ"
	CodeAVBZ     = "AVBZ"
	CodeCesantia = "CESANTIA"
	CodeSocial   = "SOCIAL_SEC"

	JurisdictionCuracao   = "curacao"
	JurisdictionStMaarten = "st_maarten"
	JurisdictionAruba     = "aruba"
	JurisdictionBonaire   = "bonaire"
)

// Earnings derived from allowance and deduction labels carry these prefixes.
const (
	allowancePrefix = "ALW_"
	deductionPrefix = "DED_"
)

// statutoryCodes decides the statutory vs other grouping in the result.
var statutoryCodes = map[string]bool{
	CodeTax:      true,
	CodeAOVAWW:   true,
	CodeKorting:  true,
	CodeBVZ:      true,
	CodeAVBZ:     true,
	CodeCesantia: true,
	CodeSocial:   true,
	"AOV":        true,
	"AWW":        true,
}

// nonCashAllowances are taxable but never paid out (loon in natura), so they
// count toward gross for tax purposes and are excluded from payable net.
var nonCashAllowances = map[string]bool{
	"phone":    true,
	"telefoon": true,
}
