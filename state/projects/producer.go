package projects

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nbd-wtf/go-nostr"
	"bondly/engine/actors"
	"bondly/engine/library"
)

// CreateProjectEvent builds and signs a project creation request from this
// wallet. An empty slug gets a generated uuid, matching the slugs the web
// client produces.
func CreateProjectEvent(slug library.ProjectID, name, about string, owners []library.Account, threshold int64, currency library.Currency) (n nostr.Event, e error) {
	if len(slug) == 0 {
		slug = uuid.New().String()
	}
	content, err := json.Marshal(Kind641600{
		ProjectID:         slug,
		Name:              name,
		About:             about,
		Owners:            owners,
		ApprovalThreshold: threshold,
		Currency:          currency,
		FeePaid:           actors.MakeOrGetConfig().GetInt64("projectCreationFee"),
	})
	if err != nil {
		return n, err
	}
	return buildAndSign(641600, "projects.create.project", slug, string(content)), nil
}

// FundProjectEvent builds and signs a funding request from this wallet.
func FundProjectEvent(slug library.ProjectID, amountStable, amountNative int64) (n nostr.Event, e error) {
	content, err := json.Marshal(Kind641602{
		ProjectID:    slug,
		AmountStable: amountStable,
		AmountNative: amountNative,
	})
	if err != nil {
		return n, err
	}
	return buildAndSign(641602, "projects.fund.project", slug, string(content)), nil
}

func buildAndSign(kind int, op string, slug library.ProjectID, content string) (n nostr.Event) {
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
