package tokens

import (
	"errors"
	"testing"

	"bondly/engine/library"
)

const (
	issuer   = library.Account("npub1issuer")
	holder   = library.Account("npub1holder")
	spender  = library.Account("npub1spender")
	receiver = library.Account("npub1receiver")
)

func TestMintIssuerOnly(t *testing.T) {
	ledger := NewTokenLedger(issuer, 1000)
	if got := ledger.BalanceOf(issuer); got != 1000 {
		t.Fatalf("initial supply %d, want 1000", got)
	}
	if err := ledger.Mint(holder, holder, 50); !errors.Is(err, ErrNotTokenIssuer) {
		t.Errorf("got %v, want ErrNotTokenIssuer", err)
	}
	if err := ledger.Mint(issuer, holder, 50); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if got := ledger.BalanceOf(holder); got != 50 {
		t.Errorf("holder balance %d, want 50", got)
	}
	if err := ledger.Mint(issuer, holder, -1); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("got %v, want ErrNegativeAmount", err)
	}
}

func TestTransferFromSpendsAllowance(t *testing.T) {
	ledger := NewTokenLedger(issuer, 1000)

	if err := ledger.TransferFrom(issuer, spender, receiver, 10); !errors.Is(err, ErrInsufficientAllowance) {
		t.Errorf("got %v, want ErrInsufficientAllowance with no approval", err)
	}
	if err := ledger.Approve(issuer, spender, 100); err != nil {
		t.Fatal(err)
	}
	if got := ledger.Allowance(issuer, spender); got != 100 {
		t.Fatalf("allowance %d, want 100", got)
	}
	if err := ledger.TransferFrom(issuer, spender, receiver, 60); err != nil {
		t.Fatalf("transfer from: %v", err)
	}
	if got := ledger.Allowance(issuer, spender); got != 40 {
		t.Errorf("allowance %d, want 40 after a partial spend", got)
	}
	if got := ledger.BalanceOf(receiver); got != 60 {
		t.Errorf("receiver balance %d, want 60", got)
	}
	if err := ledger.TransferFrom(issuer, spender, receiver, 41); !errors.Is(err, ErrInsufficientAllowance) {
		t.Errorf("got %v, want ErrInsufficientAllowance past the approved amount", err)
	}
}

func TestTransferFromChecksBalance(t *testing.T) {
	ledger := NewTokenLedger(issuer, 1000)
	if err := ledger.Mint(issuer, holder, 10); err != nil {
		t.Fatal(err)
	}
	if err := ledger.Approve(holder, spender, 100); err != nil {
		t.Fatal(err)
	}
	if err := ledger.TransferFrom(holder, spender, receiver, 50); !errors.Is(err, ErrInsufficientTokenBalance) {
		t.Errorf("got %v, want ErrInsufficientTokenBalance", err)
	}
	if got := ledger.Allowance(holder, spender); got != 100 {
		t.Errorf("allowance %d, want 100 untouched by the failed transfer", got)
	}
}

func TestTransfer(t *testing.T) {
	ledger := NewTokenLedger(issuer, 100)
	if err := ledger.Transfer(issuer, receiver, 30); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := ledger.BalanceOf(issuer); got != 70 {
		t.Errorf("issuer balance %d, want 70", got)
	}
	if err := ledger.Transfer(issuer, receiver, 71); !errors.Is(err, ErrInsufficientTokenBalance) {
		t.Errorf("got %v, want ErrInsufficientTokenBalance", err)
	}
	if err := ledger.Transfer(issuer, receiver, -5); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("got %v, want ErrNegativeAmount", err)
	}
}

func TestRegistry(t *testing.T) {
	ledger := NewTokenLedger(issuer, 0)
	if err := Register("registry-test-token", ledger); err != nil {
		t.Fatal(err)
	}
	if err := Register("registry-test-token", ledger); err == nil {
		t.Error("expected an error registering the same currency twice")
	}
	if _, ok := Get("registry-test-token"); !ok {
		t.Error("registered currency was not found")
	}
	if _, ok := Get("never-registered"); ok {
		t.Error("found a currency that was never registered")
	}
}
