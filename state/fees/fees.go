package fees

import (
	"errors"

	"github.com/sasha-s/go-deadlock"
	"bondly/engine/library"
)

var ErrInsufficientFee = errors.New("INSUFFICIENT_FEE")

// Charge validates an accompanying fee payment against the required fee.
// Pure comparison; the value itself moves through the native payer.
func Charge(feePaid, required int64) error {
	if feePaid < required {
		return ErrInsufficientFee
	}
	return nil
}

type db struct {
	data  map[library.Account]int64
	total int64
	mutex *deadlock.Mutex
}

var currentState = db{
	data:  make(map[library.Account]int64),
	mutex: &deadlock.Mutex{},
}

// Deposit records a fee collected for the protocol owner.
func Deposit(payer library.Account, amount int64) {
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	currentState.data[payer] += amount
	currentState.total += amount
}

func TotalCollected() int64 {
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return currentState.total
}

func GetMap() map[library.Account]int64 {
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	m := make(map[library.Account]int64)
	for account, amount := range currentState.data {
		m[account] = amount
	}
	return m
}
