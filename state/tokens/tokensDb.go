package tokens

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"
	"bondly/engine/library"
)

// TokenLedger is an in-process Contract implementation: a balance table with
// allowance-based transfers and issuer-only minting. It stands in for the
// on-chain token the original treasury used.
type TokenLedger struct {
	issuer     library.Account
	balances   map[library.Account]int64
	allowances map[library.Account]map[library.Account]int64
	mutex      *deadlock.Mutex
}

func NewTokenLedger(issuer library.Account, initialSupply int64) *TokenLedger {
	t := &TokenLedger{
		issuer:     issuer,
		balances:   make(map[library.Account]int64),
		allowances: make(map[library.Account]map[library.Account]int64),
		mutex:      &deadlock.Mutex{},
	}
	t.balances[issuer] = initialSupply
	return t
}

func (t *TokenLedger) Mint(caller, to library.Account, amount int64) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if caller != t.issuer {
		return ErrNotTokenIssuer
	}
	if amount < 0 {
		return ErrNegativeAmount
	}
	t.balances[to] += amount
	return nil
}

func (t *TokenLedger) Approve(owner, spender library.Account, amount int64) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if amount < 0 {
		return ErrNegativeAmount
	}
	spenders, ok := t.allowances[owner]
	if !ok {
		spenders = make(map[library.Account]int64)
		t.allowances[owner] = spenders
	}
	spenders[spender] = amount
	return nil
}

func (t *TokenLedger) Allowance(owner, spender library.Account) int64 {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.allowances[owner][spender]
}

func (t *TokenLedger) TransferFrom(owner, spender, to library.Account, amount int64) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if amount < 0 {
		return ErrNegativeAmount
	}
	if t.allowances[owner][spender] < amount {
		return ErrInsufficientAllowance
	}
	if t.balances[owner] < amount {
		return ErrInsufficientTokenBalance
	}
	t.allowances[owner][spender] -= amount
	t.balances[owner] -= amount
	t.balances[to] += amount
	return nil
}

func (t *TokenLedger) Transfer(from, to library.Account, amount int64) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if amount < 0 {
		return ErrNegativeAmount
	}
	if t.balances[from] < amount {
		return ErrInsufficientTokenBalance
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

func (t *TokenLedger) BalanceOf(account library.Account) int64 {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.balances[account]
}

var contracts = make(map[library.Currency]Contract)
var contractsMu = &deadlock.Mutex{}

// Register binds a currency identifier to its token contract. Projects can
// only be created against a registered currency.
func Register(currency library.Currency, contract Contract) error {
	contractsMu.Lock()
	defer contractsMu.Unlock()
	if _, exists := contracts[currency]; exists {
		return fmt.Errorf("currency %s is already registered", currency)
	}
	contracts[currency] = contract
	return nil
}

func Get(currency library.Currency) (Contract, bool) {
	contractsMu.Lock()
	defer contractsMu.Unlock()
	c, ok := contracts[currency]
	return c, ok
}
