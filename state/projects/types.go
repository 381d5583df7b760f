package projects

import (
	"errors"

	"bondly/engine/library"
)

// NativeCurrency is the reserved currency name for a project's native (sats)
// balance; any other currency names the project's registered token contract.
const NativeCurrency library.Currency = "native"

type Project struct {
	ProjectID         library.ProjectID
	Name              string
	About             string
	CreatedBy         library.Account
	Owners            []library.Account
	ApprovalThreshold int64
	Currency          library.Currency
	BalanceStable     int64
	BalanceNative     int64
	CreatedAt         int64
}

type Mapped map[library.ProjectID]Project

//Kind641600 STATUS:DRAFT
//Used for creating a new project
type Kind641600 struct {
	ProjectID         library.ProjectID `json:"project_id"`
	Name              string            `json:"name"`
	About             string            `json:"about"`
	Owners            []library.Account `json:"owners"`
	ApprovalThreshold int64             `json:"approval_threshold"`
	Currency          library.Currency  `json:"currency"`
	FeePaid           int64             `json:"fee_paid"`
}

//Kind641602 STATUS:DRAFT
//Used for funding an existing project
type Kind641602 struct {
	ProjectID    library.ProjectID `json:"project_id"`
	AmountStable int64             `json:"amount_stable"`
	AmountNative int64             `json:"amount_native"`
}

var ErrDuplicateProject = errors.New("DUPLICATE_PROJECT")
var ErrProjectNotFound = errors.New("PROJECT_NOT_FOUND")
var ErrIncorrectApprovalThreshold = errors.New("INCORRECT_APPROVAL_THRESHOLD")
var ErrNotEnoughProjectFunds = errors.New("NOT_ENOUGH_PROJECT_FUNDS")
var ErrUnknownCurrency = errors.New("UNKNOWN_CURRENCY")
var ErrNegativeAmount = errors.New("NEGATIVE_AMOUNT")
