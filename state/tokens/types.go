package tokens

import (
	"errors"

	"bondly/engine/library"
)

// Contract is the fungible-token collaborator backing a project's stable
// balance. The engine only ever talks to this interface; whether the token
// lives in this process or behind a bridge is the collaborator's business.
type Contract interface {
	Approve(owner, spender library.Account, amount int64) error
	Allowance(owner, spender library.Account) int64
	TransferFrom(owner, spender, to library.Account, amount int64) error
	Transfer(from, to library.Account, amount int64) error
	BalanceOf(account library.Account) int64
}

var ErrInsufficientTokenBalance = errors.New("insufficient token balance")
var ErrInsufficientAllowance = errors.New("insufficient token allowance")
var ErrNotTokenIssuer = errors.New("only the token issuer can mint")
var ErrNegativeAmount = errors.New("token amounts cannot be negative")
