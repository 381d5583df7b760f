package payments

import (
	"errors"
	"testing"

	"bondly/engine/library"
)

const (
	custodian = library.Account("npub1custodian")
	payer     = library.Account("npub1payer")
	payee     = library.Account("npub1payee")
)

func TestCollectMovesValueIntoCustody(t *testing.T) {
	ledger := NewAccountLedger(custodian)
	ledger.Deposit(payer, 1000)

	if err := ledger.Collect(payer, 400); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := ledger.BalanceOf(payer); got != 600 {
		t.Errorf("payer balance %d, want 600", got)
	}
	if got := ledger.BalanceOf(custodian); got != 400 {
		t.Errorf("custodian balance %d, want 400", got)
	}
	if err := ledger.Collect(payer, 601); !errors.Is(err, ErrInsufficientNativeBalance) {
		t.Errorf("got %v, want ErrInsufficientNativeBalance", err)
	}
	if err := ledger.Collect(payer, -1); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("got %v, want ErrNegativeAmount", err)
	}
}

func TestPayReleasesCustody(t *testing.T) {
	ledger := NewAccountLedger(custodian)
	ledger.Deposit(custodian, 500)

	if err := ledger.Pay(payee, 200); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if got := ledger.BalanceOf(payee); got != 200 {
		t.Errorf("payee balance %d, want 200", got)
	}
	if err := ledger.Pay(payee, 301); !errors.Is(err, ErrInsufficientNativeBalance) {
		t.Errorf("got %v, want ErrInsufficientNativeBalance", err)
	}
	if got := ledger.BalanceOf(payee); got != 200 {
		t.Errorf("payee balance %d changed by a failed payment", got)
	}
}
