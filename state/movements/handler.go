package movements

import (
	"encoding/json"
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"bondly/engine/actors"
	"bondly/engine/library"
	"bondly/messaging/blocks"
	"bondly/state/fees"
	"bondly/state/payments"
	"bondly/state/projects"
	"bondly/state/tokens"
)

func HandleEvent(event nostr.Event) (m Mapped, e error) {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	switch event.Kind {
	case 641700:
		return handle641700(event)
	case 641702:
		return handle641702(event)
	case 641704:
		return handle641704(event)
	default:
		return nil, fmt.Errorf("I am the movements mind, event %s was sent to me but I don't know how to handle kind %d", event.ID, event.Kind)
	}
}

func handle641700(event nostr.Event) (m Mapped, err error) {
	var unmarshalled Kind641700
	if err = json.Unmarshal([]byte(event.Content), &unmarshalled); err != nil {
		return m, fmt.Errorf("%s reported for event %s", err.Error(), event.ID)
	}
	if len(unmarshalled.MovementID) == 0 {
		return m, fmt.Errorf("event %s requests creation of a movement with an empty slug", event.ID)
	}
	if _, exists := currentState.data[unmarshalled.MovementID]; exists {
		return m, fmt.Errorf("event %s requests creation of movement \"%s\": %w", event.ID, unmarshalled.MovementID, ErrDuplicateMovement)
	}
	if err = fees.Charge(unmarshalled.FeePaid, actors.MakeOrGetConfig().GetInt64("movementCreationFee")); err != nil {
		return m, fmt.Errorf("event %s: %w", event.ID, err)
	}
	if unmarshalled.AmountStable < 0 || unmarshalled.AmountNative < 0 {
		return m, fmt.Errorf("event %s: movement amounts cannot be negative", event.ID)
	}
	if unmarshalled.AmountStable == 0 && unmarshalled.AmountNative == 0 {
		return m, fmt.Errorf("event %s: %w", event.ID, ErrNoAmount)
	}
	if _, exists := projects.GetProject(unmarshalled.ProjectID); !exists {
		return m, fmt.Errorf("event %s proposes a movement on project %s: %w", event.ID, unmarshalled.ProjectID, projects.ErrProjectNotFound)
	}
	// Escrow first: both amounts leave the spendable balances in one step or
	// the creation fails with nothing committed.
	if err = projects.DebitEscrow(unmarshalled.ProjectID, unmarshalled.AmountStable, unmarshalled.AmountNative); err != nil {
		return m, fmt.Errorf("event %s: %w", event.ID, err)
	}
	if err = payments.CurrentPayer().Collect(event.PubKey, unmarshalled.FeePaid); err != nil {
		projects.CreditEscrow(unmarshalled.ProjectID, unmarshalled.AmountStable, unmarshalled.AmountNative)
		return m, fmt.Errorf("event %s: could not collect the creation fee: %s", event.ID, err.Error())
	}
	fees.Deposit(event.PubKey, unmarshalled.FeePaid)
	tip, _ := blocks.Tip()
	currentState.upsert(unmarshalled.MovementID, Movement{
		ProjectID:       unmarshalled.ProjectID,
		Title:           unmarshalled.Title,
		About:           unmarshalled.About,
		ProposedBy:      event.PubKey,
		Payee:           unmarshalled.Payee,
		AmountStable:    unmarshalled.AmountStable,
		AmountNative:    unmarshalled.AmountNative,
		Approvals:       make(map[library.Account]bool),
		Rejections:      make(map[library.Account]bool),
		Status:          StatusPending,
		WitnessedHeight: tip.Height,
		CreatedAt:       int64(event.CreatedAt),
	})
	currentState.persistToDisk()
	return getMap(), nil
}

func handle641702(event nostr.Event) (m Mapped, err error) {
	var unmarshalled Kind641702
	if err = json.Unmarshal([]byte(event.Content), &unmarshalled); err != nil {
		return m, fmt.Errorf("%s reported for event %s", err.Error(), event.ID)
	}
	movement, project, err := validateVote(event, unmarshalled.MovementID, ErrProposerCannotApprove)
	if err != nil {
		return m, err
	}
	movement.Approvals[event.PubKey] = true
	if int64(len(movement.Approvals)) >= project.ApprovalThreshold {
		if err = payOut(movement, project); err != nil {
			// The vote stands and the movement stays PENDING with escrow
			// held; a later owner's approval retries the payout.
			currentState.upsert(unmarshalled.MovementID, movement)
			currentState.persistToDisk()
			return m, fmt.Errorf("event %s: payout failed, movement %s stays pending: %s", event.ID, unmarshalled.MovementID, err.Error())
		}
		movement.Status = StatusApproved
	}
	currentState.upsert(unmarshalled.MovementID, movement)
	currentState.persistToDisk()
	return getMap(), nil
}

func handle641704(event nostr.Event) (m Mapped, err error) {
	var unmarshalled Kind641704
	if err = json.Unmarshal([]byte(event.Content), &unmarshalled); err != nil {
		return m, fmt.Errorf("%s reported for event %s", err.Error(), event.ID)
	}
	movement, project, err := validateVote(event, unmarshalled.MovementID, ErrProposerCannotReject)
	if err != nil {
		return m, err
	}
	movement.Rejections[event.PubKey] = true
	if int64(len(movement.Rejections)) >= project.ApprovalThreshold {
		if err = projects.CreditEscrow(movement.ProjectID, movement.AmountStable, movement.AmountNative); err != nil {
			currentState.upsert(unmarshalled.MovementID, movement)
			currentState.persistToDisk()
			return m, fmt.Errorf("event %s: refund failed, movement %s stays pending: %s", event.ID, unmarshalled.MovementID, err.Error())
		}
		movement.Status = StatusRejected
	}
	currentState.upsert(unmarshalled.MovementID, movement)
	currentState.persistToDisk()
	return getMap(), nil
}

// validateVote runs the checks shared by approvals and rejections and
// returns copies safe to mutate. selfVoteErr distinguishes the two
// proposer-exclusion errors.
func validateVote(event nostr.Event, id library.MovementID, selfVoteErr error) (Movement, projects.Project, error) {
	movement, exists := getMovement(id)
	if !exists {
		return Movement{}, projects.Project{}, fmt.Errorf("event %s votes on movement %s: %w", event.ID, id, ErrMovementNotFound)
	}
	if movement.Status != StatusPending {
		return Movement{}, projects.Project{}, fmt.Errorf("event %s votes on movement %s: %w", event.ID, id, ErrMovementAlreadyResolved)
	}
	if event.PubKey == movement.ProposedBy {
		return Movement{}, projects.Project{}, fmt.Errorf("event %s: %w", event.ID, selfVoteErr)
	}
	project, exists := projects.GetProject(movement.ProjectID)
	if !exists {
		return Movement{}, projects.Project{}, fmt.Errorf("event %s votes on movement %s: %w", event.ID, id, projects.ErrProjectNotFound)
	}
	if !projects.IsOwner(movement.ProjectID, event.PubKey) {
		return Movement{}, projects.Project{}, fmt.Errorf("event %s: %s votes on movement %s: %w", event.ID, event.PubKey, id, ErrNotAProjectOwner)
	}
	if movement.Approvals[event.PubKey] || movement.Rejections[event.PubKey] {
		return Movement{}, projects.Project{}, fmt.Errorf("event %s: %s votes again on movement %s: %w", event.ID, event.PubKey, id, ErrAlreadyVoted)
	}
	return movement, project, nil
}

// payOut releases the held escrow to the payee through the external
// collaborators. A failed native leg unwinds the stable leg so a partial
// payout never sticks.
func payOut(movement Movement, project projects.Project) error {
	custodian := actors.MyWallet().Account
	if movement.AmountStable > 0 {
		contract, ok := tokens.Get(project.Currency)
		if !ok {
			return fmt.Errorf("project currency %s: %w", project.Currency, projects.ErrUnknownCurrency)
		}
		if err := contract.Transfer(custodian, movement.Payee, movement.AmountStable); err != nil {
			return err
		}
	}
	if movement.AmountNative > 0 {
		if err := payments.CurrentPayer().Pay(movement.Payee, movement.AmountNative); err != nil {
			if movement.AmountStable > 0 {
				if contract, ok := tokens.Get(project.Currency); ok {
					contract.Transfer(movement.Payee, custodian, movement.AmountStable)
				}
			}
			return err
		}
	}
	return nil
}
