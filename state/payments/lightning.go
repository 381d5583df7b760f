package payments

import (
	"fmt"

	"bondly/engine/actors"
	"bondly/engine/library"
	"bondly/messaging/relays"
)

// LightningPayer releases native value over lightning: the payee's profile
// is resolved to a lud16 address and an invoice is fetched from their
// lightning service. Settlement happens in the operator's wallet, outside
// this engine; Pay fails hard when no invoice can be produced, which keeps
// the owning movement PENDING.
type LightningPayer struct{}

func (LightningPayer) Collect(from library.Account, amount int64) error {
	// Inbound value arrives as zaps witnessed by the operator; nothing to
	// enforce here without a node.
	actors.LogCLI(fmt.Sprintf("expecting %d sats from %s", amount, from), 4)
	return nil
}

func (LightningPayer) Pay(to library.Account, amount int64) error {
	kind0, ok := relays.FetchLatestProfile(to)
	if !ok {
		return fmt.Errorf("could not find a profile for payee %s", to)
	}
	lud16, ok := actors.GetLightningAddressFromKind0(kind0)
	if !ok {
		return fmt.Errorf("payee %s has no lightning address in their profile", to)
	}
	invoice, err := actors.GetInvoice(lud16, amount, "bondly treasury payout")
	if err != nil {
		return err
	}
	bolt11, err := actors.DecodeInvoice(invoice)
	if err != nil {
		return err
	}
	if bolt11.MSatoshi/1000 != amount {
		return fmt.Errorf("invoice is for %d sats but payout is %d", bolt11.MSatoshi/1000, amount)
	}
	actors.LogCLI(fmt.Sprintf("pay %d sats to %s: %s", amount, to, invoice), 4)
	return nil
}

func (LightningPayer) BalanceOf(account library.Account) int64 {
	return 0
}
