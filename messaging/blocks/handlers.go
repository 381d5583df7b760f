package blocks

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"golang.org/x/exp/slices"
	"bondly/engine/actors"
	"bondly/engine/library"
)

// HandleEvent accepts a block header announcement. Movements stamp the tip
// height at creation, so announcements are only taken from the protocol
// owner or an account listed in the blockOracles config.
func HandleEvent(event nostr.Event) (m Mapped, e error) {
	currentStateMu.Lock()
	defer currentStateMu.Unlock()

	if event.Kind != 1517 {
		return nil, fmt.Errorf("invalid kind")
	}

	if !trustedOracle(event.PubKey) {
		return nil, fmt.Errorf("pubkey %s is not a trusted block oracle", event.PubKey)
	}

	hash, ok := library.GetFirstTag(event, "hash")
	if !ok {
		return nil, fmt.Errorf("failed to get block hash from event")
	}

	height, ok := library.GetFirstTag(event, "height")
	if !ok {
		return nil, fmt.Errorf("failed to get block height from event")
	}

	heightInt, err := strconv.ParseInt(height, 10, 64)
	if err != nil {
		return nil, err
	}

	minerTime, ok := library.GetFirstTag(event, "minertime")
	if !ok {
		return nil, fmt.Errorf("failed to get block miner time from event")
	}
	minerTimeInt, err := strconv.ParseInt(minerTime, 10, 64)
	if err != nil {
		return nil, err
	}

	medianTime, ok := library.GetFirstTag(event, "mediantime")
	if !ok {
		return nil, fmt.Errorf("failed to get block median time from event")
	}
	medianTimeInt, err := strconv.ParseInt(medianTime, 10, 64)
	if err != nil {
		return nil, err
	}

	difficulty, ok := library.GetFirstTag(event, "difficulty")
	if !ok {
		return nil, fmt.Errorf("failed to get block difficulty from event")
	}
	difficultyInt, err := strconv.ParseInt(difficulty, 10, 64)
	if err != nil {
		return nil, err
	}

	if existing, exists := currentState[heightInt]; exists {
		if existing.Hash == hash {
			return nil, fmt.Errorf("we already have this block")
		}
	}
	t, ok := tip()
	if ok {
		if t.Height >= heightInt {
			return nil, fmt.Errorf("this block is not higher than our current block")
		}
	}
	currentState[heightInt] = Block{
		Height:     heightInt,
		Hash:       hash,
		MedianTime: time.Unix(medianTimeInt, 0),
		MinerTime:  time.Unix(minerTimeInt, 0),
		Difficulty: difficultyInt,
	}
	return getMapped(), nil
}

func trustedOracle(account library.Account) bool {
	if account == actors.MyWallet().Account {
		return true
	}
	return slices.Contains(actors.MakeOrGetConfig().GetStringSlice("blockOracles"), account)
}
