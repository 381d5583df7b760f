package fees

import (
	"errors"
	"testing"

	"bondly/engine/library"
)

func TestCharge(t *testing.T) {
	if err := Charge(10000, 10000); err != nil {
		t.Errorf("exact fee refused: %v", err)
	}
	if err := Charge(15000, 10000); err != nil {
		t.Errorf("overpaid fee refused: %v", err)
	}
	if err := Charge(9999, 10000); !errors.Is(err, ErrInsufficientFee) {
		t.Errorf("got %v, want INSUFFICIENT_FEE", err)
	}
	if err := Charge(0, 0); err != nil {
		t.Errorf("zero fee refused when none is required: %v", err)
	}
}

func TestDeposit(t *testing.T) {
	before := TotalCollected()
	Deposit(library.Account("npub1feepayer"), 10000)
	Deposit(library.Account("npub1feepayer"), 5000)
	if got := TotalCollected() - before; got != 15000 {
		t.Errorf("total collected rose by %d, want 15000", got)
	}
	if got := GetMap()[library.Account("npub1feepayer")]; got != 15000 {
		t.Errorf("account total %d, want 15000", got)
	}
}
