package projects

import (
	"fmt"

	"bondly/engine/library"
)

// Balance returns the named balance of a project: NativeCurrency for the
// native balance, the project's own currency for the stable balance.
func Balance(id library.ProjectID, currency library.Currency) (int64, error) {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	p, ok := currentState.data[id]
	if !ok {
		return 0, fmt.Errorf("project %s: %w", id, ErrProjectNotFound)
	}
	switch currency {
	case NativeCurrency:
		return p.BalanceNative, nil
	case p.Currency:
		return p.BalanceStable, nil
	}
	return 0, fmt.Errorf("project %s holds no %s: %w", id, currency, ErrUnknownCurrency)
}

// DebitEscrow moves both amounts out of the project's spendable balances in
// one step. Either both debits succeed or neither takes effect; an underflow
// on either side fails the whole call with NOT_ENOUGH_PROJECT_FUNDS.
func DebitEscrow(id library.ProjectID, amountStable, amountNative int64) error {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	p, ok := currentState.data[id]
	if !ok {
		return fmt.Errorf("project %s: %w", id, ErrProjectNotFound)
	}
	if amountStable < 0 || amountNative < 0 {
		return ErrNegativeAmount
	}
	if amountStable > p.BalanceStable || amountNative > p.BalanceNative {
		return fmt.Errorf("project %s: %w", id, ErrNotEnoughProjectFunds)
	}
	p.BalanceStable -= amountStable
	p.BalanceNative -= amountNative
	currentState.upsert(id, p)
	currentState.persistToDisk()
	return nil
}

// CreditEscrow returns held amounts to the project's spendable balances when
// a movement is rejected.
func CreditEscrow(id library.ProjectID, amountStable, amountNative int64) error {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return credit(id, amountStable, amountNative)
}

func credit(id library.ProjectID, amountStable, amountNative int64) error {
	p, ok := currentState.data[id]
	if !ok {
		return fmt.Errorf("project %s: %w", id, ErrProjectNotFound)
	}
	if amountStable < 0 || amountNative < 0 {
		return ErrNegativeAmount
	}
	p.BalanceStable += amountStable
	p.BalanceNative += amountNative
	currentState.upsert(id, p)
	currentState.persistToDisk()
	return nil
}
