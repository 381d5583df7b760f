package payments

import (
	"github.com/sasha-s/go-deadlock"
	"bondly/engine/actors"
	"bondly/engine/library"
)

// AccountLedger is an in-process Payer: a native balance table with the
// protocol wallet as custodian. Collect moves value from the payer into
// custody, Pay releases custody to a payee.
type AccountLedger struct {
	custodian library.Account
	balances  map[library.Account]int64
	mutex     *deadlock.Mutex
}

func NewAccountLedger(custodian library.Account) *AccountLedger {
	return &AccountLedger{
		custodian: custodian,
		balances:  make(map[library.Account]int64),
		mutex:     &deadlock.Mutex{},
	}
}

// Deposit credits an account out of band, for funding test and demo
// principals before they interact with the treasury.
func (a *AccountLedger) Deposit(account library.Account, amount int64) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.balances[account] += amount
}

func (a *AccountLedger) Collect(from library.Account, amount int64) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if amount < 0 {
		return ErrNegativeAmount
	}
	if a.balances[from] < amount {
		return ErrInsufficientNativeBalance
	}
	a.balances[from] -= amount
	a.balances[a.custodian] += amount
	return nil
}

func (a *AccountLedger) Pay(to library.Account, amount int64) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if amount < 0 {
		return ErrNegativeAmount
	}
	if a.balances[a.custodian] < amount {
		return ErrInsufficientNativeBalance
	}
	a.balances[a.custodian] -= amount
	a.balances[to] += amount
	return nil
}

func (a *AccountLedger) BalanceOf(account library.Account) int64 {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.balances[account]
}

var currentPayer Payer
var currentPayerMu = &deadlock.Mutex{}

func SetPayer(p Payer) {
	currentPayerMu.Lock()
	defer currentPayerMu.Unlock()
	currentPayer = p
}

// CurrentPayer returns the configured native payer, defaulting to an
// in-process ledger custodied by the protocol wallet.
func CurrentPayer() Payer {
	currentPayerMu.Lock()
	defer currentPayerMu.Unlock()
	if currentPayer == nil {
		currentPayer = NewAccountLedger(actors.MyWallet().Account)
	}
	return currentPayer
}
