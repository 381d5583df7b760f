package movements

import (
	"errors"

	"bondly/engine/library"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Movement is a proposed payment out of a project's escrow. AmountStable and
// AmountNative are the held-escrow snapshot taken at creation; they are only
// released when the movement reaches a terminal status.
type Movement struct {
	MovementID      library.MovementID
	ProjectID       library.ProjectID
	Title           string
	About           string
	ProposedBy      library.Account
	Payee           library.Account
	AmountStable    int64
	AmountNative    int64
	Approvals       map[library.Account]bool
	Rejections      map[library.Account]bool
	Status          Status
	WitnessedHeight int64
	CreatedAt       int64
}

type Mapped map[library.MovementID]Movement

//Kind641700 STATUS:DRAFT
//Used for proposing a new movement against a project's funds
type Kind641700 struct {
	MovementID   library.MovementID `json:"movement_id"`
	ProjectID    library.ProjectID  `json:"project_id"`
	Title        string             `json:"title"`
	About        string             `json:"about"`
	AmountStable int64              `json:"amount_stable"`
	AmountNative int64              `json:"amount_native"`
	Payee        library.Account    `json:"payee"`
	FeePaid      int64              `json:"fee_paid"`
}

//Kind641702 STATUS:DRAFT
//Used for approving a pending movement
type Kind641702 struct {
	MovementID library.MovementID `json:"movement_id"`
}

//Kind641704 STATUS:DRAFT
//Used for rejecting a pending movement
type Kind641704 struct {
	MovementID library.MovementID `json:"movement_id"`
}

var ErrDuplicateMovement = errors.New("DUPLICATE_MOVEMENT")
var ErrMovementNotFound = errors.New("MOVEMENT_NOT_FOUND")
var ErrMovementAlreadyResolved = errors.New("MOVEMENT_ALREADY_RESOLVED")
var ErrAlreadyVoted = errors.New("ALREADY_VOTED")
var ErrNotAProjectOwner = errors.New("NOT_A_PROJECT_OWNER")
var ErrProposerCannotApprove = errors.New("CANNOT_BE_PROPOSED_AND_APPROVED_BY_SAME_USER")
var ErrProposerCannotReject = errors.New("CANNOT_BE_PROPOSED_AND_REJECTED_BY_SAME_USER")
var ErrNoAmount = errors.New("a movement needs a positive amount in at least one currency")
