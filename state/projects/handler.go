package projects

import (
	"encoding/json"
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"bondly/engine/actors"
	"bondly/state/fees"
	"bondly/state/payments"
	"bondly/state/tokens"
)

func HandleEvent(event nostr.Event) (m Mapped, e error) {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	switch event.Kind {
	case 641600:
		return handle641600(event)
	case 641602:
		return handle641602(event)
	default:
		return nil, fmt.Errorf("I am the projects mind, event %s was sent to me but I don't know how to handle kind %d", event.ID, event.Kind)
	}
}

func handle641600(event nostr.Event) (m Mapped, err error) {
	var unmarshalled Kind641600
	if err = json.Unmarshal([]byte(event.Content), &unmarshalled); err != nil {
		return m, fmt.Errorf("%s reported for event %s", err.Error(), event.ID)
	}
	if len(unmarshalled.ProjectID) == 0 {
		return m, fmt.Errorf("event %s requests creation of a project with an empty slug", event.ID)
	}
	if _, exists := currentState.data[unmarshalled.ProjectID]; exists {
		return m, fmt.Errorf("event %s requests creation of project \"%s\": %w", event.ID, unmarshalled.ProjectID, ErrDuplicateProject)
	}
	if err = fees.Charge(unmarshalled.FeePaid, actors.MakeOrGetConfig().GetInt64("projectCreationFee")); err != nil {
		return m, fmt.Errorf("event %s: %w", event.ID, err)
	}
	if err = ValidateApprovalPolicy(unmarshalled.Owners, unmarshalled.ApprovalThreshold); err != nil {
		return m, fmt.Errorf("event %s: %w", event.ID, err)
	}
	if _, ok := tokens.Get(unmarshalled.Currency); !ok {
		return m, fmt.Errorf("event %s names currency %s: %w", event.ID, unmarshalled.Currency, ErrUnknownCurrency)
	}
	if err = payments.CurrentPayer().Collect(event.PubKey, unmarshalled.FeePaid); err != nil {
		return m, fmt.Errorf("event %s: could not collect the creation fee: %s", event.ID, err.Error())
	}
	fees.Deposit(event.PubKey, unmarshalled.FeePaid)
	currentState.upsert(unmarshalled.ProjectID, Project{
		Name:              unmarshalled.Name,
		About:             unmarshalled.About,
		CreatedBy:         event.PubKey,
		Owners:            unmarshalled.Owners,
		ApprovalThreshold: unmarshalled.ApprovalThreshold,
		Currency:          unmarshalled.Currency,
		BalanceStable:     0,
		BalanceNative:     0,
		CreatedAt:         int64(event.CreatedAt),
	})
	currentState.persistToDisk()
	return getMap(), nil
}

func handle641602(event nostr.Event) (m Mapped, err error) {
	var unmarshalled Kind641602
	if err = json.Unmarshal([]byte(event.Content), &unmarshalled); err != nil {
		return m, fmt.Errorf("%s reported for event %s", err.Error(), event.ID)
	}
	if unmarshalled.AmountStable < 0 || unmarshalled.AmountNative < 0 {
		return m, fmt.Errorf("event %s: %w", event.ID, ErrNegativeAmount)
	}
	project, exists := currentState.data[unmarshalled.ProjectID]
	if !exists {
		return m, fmt.Errorf("event %s tried to fund project %s: %w", event.ID, unmarshalled.ProjectID, ErrProjectNotFound)
	}
	custodian := actors.MyWallet().Account
	if unmarshalled.AmountStable > 0 {
		contract, ok := tokens.Get(project.Currency)
		if !ok {
			return m, fmt.Errorf("event %s: project currency %s: %w", event.ID, project.Currency, ErrUnknownCurrency)
		}
		// The funder must have approved the custodian beforehand; the
		// collaborator enforces that.
		if err = contract.TransferFrom(event.PubKey, custodian, custodian, unmarshalled.AmountStable); err != nil {
			return m, fmt.Errorf("event %s: could not pull %d %s from %s: %s", event.ID, unmarshalled.AmountStable, project.Currency, event.PubKey, err.Error())
		}
	}
	if unmarshalled.AmountNative > 0 {
		if err = payments.CurrentPayer().Collect(event.PubKey, unmarshalled.AmountNative); err != nil {
			// Unwind the stable pull so a failed funding commits nothing.
			if unmarshalled.AmountStable > 0 {
				if contract, ok := tokens.Get(project.Currency); ok {
					contract.Transfer(custodian, event.PubKey, unmarshalled.AmountStable)
				}
			}
			return m, fmt.Errorf("event %s: could not collect %d sats from %s: %s", event.ID, unmarshalled.AmountNative, event.PubKey, err.Error())
		}
	}
	if err = credit(unmarshalled.ProjectID, unmarshalled.AmountStable, unmarshalled.AmountNative); err != nil {
		return m, fmt.Errorf("event %s: %w", event.ID, err)
	}
	return getMap(), nil
}
