package library

type Wallet struct {
	PrivateKey string
	SeedWords  string
	Account    Account
}

// Account is a pre-authenticated principal identifier (a nostr pubkey). The
// engine never verifies anything about an Account beyond set membership; the
// envelope signature check in eventcatcher is the authentication boundary.
type Account = string

// ProjectID is the human-readable slug of a treasury project.
type ProjectID = string

// MovementID is the slug of a proposed payment, unique across all projects.
type MovementID = string

// Currency names the fungible-token collaborator backing a project's stable
// balance.
type Currency = string

type Sha256 = string

type Profile struct {
	Name    string `json:"name"`
	About   string `json:"about"`
	Lud06   string `json:"lud06"`
	Lud16   string `json:"lud16"`
	Picture string `json:"picture"`
}
