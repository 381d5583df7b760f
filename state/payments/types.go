package payments

import (
	"errors"

	"bondly/engine/library"
)

// Payer is the native-currency transfer collaborator. Collect pulls value
// that accompanies an operation (fees, native funding); Pay releases value to
// a payee on movement approval. Failure of either is a hard error to the
// calling operation, never retried by the engine.
type Payer interface {
	Collect(from library.Account, amount int64) error
	Pay(to library.Account, amount int64) error
	BalanceOf(account library.Account) int64
}

var ErrInsufficientNativeBalance = errors.New("insufficient native balance")
var ErrNegativeAmount = errors.New("native amounts cannot be negative")
