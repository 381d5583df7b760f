package movements

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nbd-wtf/go-nostr"
	"bondly/engine/actors"
	"bondly/engine/library"
)

// CreateMovementEvent builds and signs a movement proposal from this wallet.
// An empty slug gets a generated uuid.
func CreateMovementEvent(slug library.MovementID, projectID library.ProjectID, title, about string, amountStable, amountNative int64, payee library.Account) (n nostr.Event, e error) {
	if len(slug) == 0 {
		slug = uuid.New().String()
	}
	content, err := json.Marshal(Kind641700{
		MovementID:   slug,
		ProjectID:    projectID,
		Title:        title,
		About:        about,
		AmountStable: amountStable,
		AmountNative: amountNative,
		Payee:        payee,
		FeePaid:      actors.MakeOrGetConfig().GetInt64("movementCreationFee"),
	})
	if err != nil {
		return n, err
	}
	return buildAndSign(641700, "movements.create.movement", slug, string(content)), nil
}

// ApproveMovementEvent builds and signs an approval vote from this wallet.
func ApproveMovementEvent(slug library.MovementID) (n nostr.Event, e error) {
	content, err := json.Marshal(Kind641702{MovementID: slug})
	if err != nil {
		return n, err
	}
	return buildAndSign(641702, "movements.approve.movement", slug, string(content)), nil
}

// RejectMovementEvent builds and signs a rejection vote from this wallet.
func RejectMovementEvent(slug library.MovementID) (n nostr.Event, e error) {
	content, err := json.Marshal(Kind641704{MovementID: slug})
	if err != nil {
		return n, err
	}
	return buildAndSign(641704, "movements.reject.movement", slug, string(content)), nil
}

func buildAndSign(kind int, op string, slug library.MovementID, content string) (n nostr.Event) {
	n.CreatedAt = nostr.Timestamp(time.Now().Unix())
	n.PubKey = actors.MyWallet().Account
	n.Kind = kind
	n.Tags = nostr.Tags{
		nostr.Tag{"op", op, slug},
		nostr.Tag{"e", actors.StateChangeRequests, "", "reply"},
		nostr.Tag{"e", actors.IgnitionEvent, "", "root"},
	}
	n.Content = content
	n.ID = n.GetID()
	n.Sign(actors.MyWallet().PrivateKey)
	return
}
