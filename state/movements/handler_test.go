package movements

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/viper"
	"bondly/engine/actors"
	"bondly/engine/library"
	"bondly/state/payments"
	"bondly/state/projects"
	"bondly/state/tokens"
)

const (
	alice = library.Account("npub1alice")
	bob   = library.Account("npub1bob")
	carl  = library.Account("npub1carl")
	dan   = library.Account("npub1dan")
	dave  = library.Account("npub1dave") // the pizza shop
	eve   = library.Account("npub1eve")  // not an owner
)

var sequence int

func uniq(prefix string) string {
	sequence++
	return fmt.Sprintf("%s-%d", prefix, sequence)
}

func makeEvent(kind int, account library.Account, content interface{}) nostr.Event {
	b, err := json.Marshal(content)
	if err != nil {
		panic(err)
	}
	return nostr.Event{
		ID:      uniq("event"),
		PubKey:  account,
		Kind:    kind,
		Content: string(b),
	}
}

// treasury is a funded project with registered collaborators, the smallest
// world a movement can live in.
type treasury struct {
	projectID library.ProjectID
	currency  library.Currency
	stable    *tokens.TokenLedger
	payer     *payments.AccountLedger
	custodian library.Account
}

func newTreasury(t *testing.T, owners []library.Account, threshold, fundStable, fundNative int64) treasury {
	t.Helper()
	conf := viper.New()
	conf.Set("rootDir", t.TempDir()+"/")
	conf.Set("flatFileDir", "data/")
	conf.Set("projectCreationFee", int64(10000))
	conf.Set("movementCreationFee", int64(0))
	actors.SetConfig(conf)

	custodian := actors.MyWallet().Account
	payer := payments.NewAccountLedger(custodian)
	payments.SetPayer(payer)
	currency := library.Currency(uniq("stable"))
	stable := tokens.NewTokenLedger(alice, fundStable)
	if err := tokens.Register(currency, stable); err != nil {
		t.Fatal(err)
	}
	payer.Deposit(alice, 10000+fundNative)

	projectID := library.ProjectID(uniq("pizza"))
	_, err := projects.HandleEvent(makeEvent(641600, alice, projects.Kind641600{
		ProjectID:         projectID,
		Name:              "Pizza Fund",
		Owners:            owners,
		ApprovalThreshold: threshold,
		Currency:          currency,
		FeePaid:           10000,
	}))
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if fundStable > 0 || fundNative > 0 {
		if err := stable.Approve(alice, custodian, fundStable); err != nil {
			t.Fatal(err)
		}
		_, err = projects.HandleEvent(makeEvent(641602, alice, projects.Kind641602{
			ProjectID:    projectID,
			AmountStable: fundStable,
			AmountNative: fundNative,
		}))
		if err != nil {
			t.Fatalf("fund project: %v", err)
		}
	}
	return treasury{
		projectID: projectID,
		currency:  currency,
		stable:    stable,
		payer:     payer,
		custodian: custodian,
	}
}

func (w treasury) propose(t *testing.T, proposer library.Account, payee library.Account, amountStable, amountNative int64) library.MovementID {
	t.Helper()
	id := library.MovementID(uniq("movement"))
	_, err := HandleEvent(makeEvent(641700, proposer, Kind641700{
		MovementID:   id,
		ProjectID:    w.projectID,
		Title:        "one large margherita",
		AmountStable: amountStable,
		AmountNative: amountNative,
		Payee:        payee,
	}))
	if err != nil {
		t.Fatalf("propose movement: %v", err)
	}
	return id
}

func approve(account library.Account, id library.MovementID) error {
	_, err := HandleEvent(makeEvent(641702, account, Kind641702{MovementID: id}))
	return err
}

func reject(account library.Account, id library.MovementID) error {
	_, err := HandleEvent(makeEvent(641704, account, Kind641704{MovementID: id}))
	return err
}

func mustStatus(t *testing.T, id library.MovementID, want Status) Movement {
	t.Helper()
	movement, exists := GetMovement(id)
	if !exists {
		t.Fatalf("movement %s does not exist", id)
	}
	if movement.Status != want {
		t.Fatalf("movement %s has status %s, want %s", id, movement.Status, want)
	}
	return movement
}

func TestMovementApprovedPaysPayee(t *testing.T) {
	w := newTreasury(t, []library.Account{alice, bob, carl}, 2, 240, 0)
	id := w.propose(t, alice, dave, 199, 0)

	// Escrow leaves the spendable balance at creation.
	if got, _ := projects.Balance(w.projectID, w.currency); got != 41 {
		t.Fatalf("stable balance %d, want 41 with 199 held in escrow", got)
	}

	if err := approve(alice, id); !errors.Is(err, ErrProposerCannotApprove) {
		t.Errorf("got %v, want CANNOT_BE_PROPOSED_AND_APPROVED_BY_SAME_USER", err)
	}
	if err := approve(bob, id); err != nil {
		t.Fatalf("first approval: %v", err)
	}
	mustStatus(t, id, StatusPending)
	if got := w.stable.BalanceOf(dave); got != 0 {
		t.Fatalf("payee was paid %d before the threshold", got)
	}

	if err := approve(carl, id); err != nil {
		t.Fatalf("second approval: %v", err)
	}
	mustStatus(t, id, StatusApproved)
	if got := w.stable.BalanceOf(dave); got != 199 {
		t.Errorf("payee received %d, want 199", got)
	}
	if got, _ := projects.Balance(w.projectID, w.currency); got != 41 {
		t.Errorf("stable balance %d, want 41 after the payout", got)
	}
}

func TestMovementRejectedRefundsEscrow(t *testing.T) {
	w := newTreasury(t, []library.Account{alice, bob, carl}, 2, 240, 0)
	id := w.propose(t, alice, dave, 199, 0)

	if err := reject(alice, id); !errors.Is(err, ErrProposerCannotReject) {
		t.Errorf("got %v, want CANNOT_BE_PROPOSED_AND_REJECTED_BY_SAME_USER", err)
	}
	if err := reject(bob, id); err != nil {
		t.Fatalf("first rejection: %v", err)
	}
	mustStatus(t, id, StatusPending)
	if err := reject(carl, id); err != nil {
		t.Fatalf("second rejection: %v", err)
	}
	mustStatus(t, id, StatusRejected)
	if got, _ := projects.Balance(w.projectID, w.currency); got != 240 {
		t.Errorf("stable balance %d, want 240 after the refund", got)
	}
	if got := w.stable.BalanceOf(dave); got != 0 {
		t.Errorf("payee received %d from a rejected movement", got)
	}
}

func TestRejectionsDoNotBlockApproval(t *testing.T) {
	w := newTreasury(t, []library.Account{alice, bob, carl, dan}, 2, 240, 0)
	id := w.propose(t, alice, dave, 199, 0)

	if err := reject(bob, id); err != nil {
		t.Fatalf("rejection: %v", err)
	}
	if err := approve(carl, id); err != nil {
		t.Fatalf("first approval: %v", err)
	}
	mustStatus(t, id, StatusPending)
	if err := approve(dan, id); err != nil {
		t.Fatalf("second approval: %v", err)
	}
	mustStatus(t, id, StatusApproved)
	if got := w.stable.BalanceOf(dave); got != 199 {
		t.Errorf("payee received %d, want 199", got)
	}
}

func TestVoteValidation(t *testing.T) {
	w := newTreasury(t, []library.Account{alice, bob, carl}, 2, 240, 0)
	id := w.propose(t, alice, dave, 100, 0)

	if err := approve(eve, id); !errors.Is(err, ErrNotAProjectOwner) {
		t.Errorf("got %v, want NOT_A_PROJECT_OWNER", err)
	}
	if err := approve(bob, "no-such-movement"); !errors.Is(err, ErrMovementNotFound) {
		t.Errorf("got %v, want MOVEMENT_NOT_FOUND", err)
	}
	if err := approve(bob, id); err != nil {
		t.Fatalf("approval: %v", err)
	}
	if err := approve(bob, id); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("got %v, want ALREADY_VOTED on a second approval", err)
	}
	if err := reject(bob, id); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("got %v, want ALREADY_VOTED on a vote switch", err)
	}

	if err := approve(carl, id); err != nil {
		t.Fatalf("approval: %v", err)
	}
	mustStatus(t, id, StatusApproved)
	if err := reject(carl, id); !errors.Is(err, ErrMovementAlreadyResolved) {
		t.Errorf("got %v, want MOVEMENT_ALREADY_RESOLVED", err)
	}
}

func TestMovementRefusals(t *testing.T) {
	w := newTreasury(t, []library.Account{alice, bob, carl}, 2, 240, 0)

	_, err := HandleEvent(makeEvent(641700, alice, Kind641700{
		MovementID:   library.MovementID(uniq("movement")),
		ProjectID:    w.projectID,
		AmountStable: 300,
		Payee:        dave,
	}))
	if !errors.Is(err, projects.ErrNotEnoughProjectFunds) {
		t.Errorf("got %v, want NOT_ENOUGH_PROJECT_FUNDS", err)
	}
	if got, _ := projects.Balance(w.projectID, w.currency); got != 240 {
		t.Errorf("stable balance %d, want 240 after a refused movement", got)
	}

	_, err = HandleEvent(makeEvent(641700, alice, Kind641700{
		MovementID: library.MovementID(uniq("movement")),
		ProjectID:  w.projectID,
		Payee:      dave,
	}))
	if !errors.Is(err, ErrNoAmount) {
		t.Errorf("got %v, want an error for a movement with no amount", err)
	}

	_, err = HandleEvent(makeEvent(641700, alice, Kind641700{
		MovementID:   library.MovementID(uniq("movement")),
		ProjectID:    "no-such-project",
		AmountStable: 1,
		Payee:        dave,
	}))
	if !errors.Is(err, projects.ErrProjectNotFound) {
		t.Errorf("got %v, want PROJECT_NOT_FOUND", err)
	}

	id := w.propose(t, alice, dave, 100, 0)
	_, err = HandleEvent(makeEvent(641700, bob, Kind641700{
		MovementID:   id,
		ProjectID:    w.projectID,
		AmountStable: 1,
		Payee:        dave,
	}))
	if !errors.Is(err, ErrDuplicateMovement) {
		t.Errorf("got %v, want DUPLICATE_MOVEMENT", err)
	}
}

func TestFailedPayoutKeepsMovementPending(t *testing.T) {
	w := newTreasury(t, []library.Account{alice, bob, carl, dan}, 2, 0, 1000)
	id := w.propose(t, alice, dave, 0, 500)

	// Drain the custodian so the native payout cannot go through.
	if err := w.payer.Pay(eve, w.payer.BalanceOf(w.custodian)); err != nil {
		t.Fatal(err)
	}

	if err := approve(bob, id); err != nil {
		t.Fatalf("first approval: %v", err)
	}
	if err := approve(carl, id); err == nil {
		t.Fatal("expected the payout to fail with an empty custodian")
	}
	movement := mustStatus(t, id, StatusPending)
	if !movement.Approvals[carl] {
		t.Error("the vote behind a failed payout was not preserved")
	}

	// Once the custodian is solvent again the next approval retries the
	// payout without touching escrow a second time.
	w.payer.Deposit(w.custodian, 500)
	if err := approve(dan, id); err != nil {
		t.Fatalf("retry approval: %v", err)
	}
	mustStatus(t, id, StatusApproved)
	if got := w.payer.BalanceOf(dave); got != 500 {
		t.Errorf("payee received %d sats, want 500", got)
	}
	if got, _ := projects.Balance(w.projectID, projects.NativeCurrency); got != 500 {
		t.Errorf("native balance %d, want 500", got)
	}
}

func TestDualCurrencyMovement(t *testing.T) {
	w := newTreasury(t, []library.Account{alice, bob, carl}, 2, 240, 1000)
	id := w.propose(t, alice, dave, 199, 600)

	if got, _ := projects.Balance(w.projectID, w.currency); got != 41 {
		t.Fatalf("stable balance %d, want 41", got)
	}
	if got, _ := projects.Balance(w.projectID, projects.NativeCurrency); got != 400 {
		t.Fatalf("native balance %d, want 400", got)
	}
	if err := approve(bob, id); err != nil {
		t.Fatal(err)
	}
	if err := approve(carl, id); err != nil {
		t.Fatal(err)
	}
	mustStatus(t, id, StatusApproved)
	if got := w.stable.BalanceOf(dave); got != 199 {
		t.Errorf("payee token balance %d, want 199", got)
	}
	if got := w.payer.BalanceOf(dave); got != 600 {
		t.Errorf("payee native balance %d, want 600", got)
	}
}
