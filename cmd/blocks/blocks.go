package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/eiannone/keyboard"
	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/viper"
	"bondly/engine/actors"
	"bondly/messaging/blocks"
	"bondly/messaging/relays"
)

// A block oracle. Polls a block explorer for the bitcoin tip and announces
// it as a kind 1517 event so engines can stamp movements with a height.
func main() {
	conf := viper.New()
	actors.InitConfig(conf)
	actors.SetConfig(conf)
	fmt.Println("Current wallet: " + actors.MyWallet().Account)
	var eventChan = make(chan nostr.Event)
	var terminate = make(chan struct{})
	go sendBlocks(eventChan, terminate)
	go listenForBlocks(eventChan, terminate)
	go cliListener(terminate)
	<-terminate
}

func cliListener(interrupt chan struct{}) {
	for {
		r, k, err := keyboard.GetSingleKey()
		if err != nil {
			panic(err)
		}
		str := string(r)
		switch str {
		default:
			if k == 13 {
				fmt.Println("\n-----------------------------------")
				break
			}
			if r == 0 {
				break
			}
			fmt.Println("Key " + str + " is not bound to any test procedures. See main.cliListener for more details.")
		case "q":
			close(interrupt)
		}
	}
}

func listenForBlocks(eventChan chan nostr.Event, terminate chan struct{}) {
	var currentHeight = checkAndSend(0, eventChan)
	for {
		select {
		case <-terminate:
			return
		case <-time.After(time.Second * 30):
			currentHeight = checkAndSend(currentHeight, eventChan)
		}
	}
}

func checkAndSend(currentHeight int64, eventChan chan nostr.Event) int64 {
	block, err := getLatestBlock()
	if err != nil {
		actors.LogCLI(err, 3)
		return currentHeight
	}
	if block.Height > currentHeight {
		eventChan <- makeEvent(block)
		fmt.Printf("\n%#v\n", block)
		return block.Height
	}
	return currentHeight
}

func sendBlocks(eventChan chan nostr.Event, terminate chan struct{}) {
	for {
		select {
		case <-terminate:
			return
		case e := <-eventChan:
			e.ID = e.GetID()
			err := e.Sign(actors.MyWallet().PrivateKey)
			if err != nil {
				actors.LogCLI(err, 2)
				break
			}
			sigok, err := e.CheckSignature()
			if err != nil {
				actors.LogCLI(err, 2)
				break
			}
			if sigok {
				relays.PublishToRelays([]nostr.Event{e}, actors.MakeOrGetConfig().GetStringSlice("relaysMust"))
			}
		}
	}
}

func makeEvent(block blocks.Block) (n nostr.Event) {
	n.PubKey = actors.MyWallet().Account
	n.Kind = 1517
	n.Content = ""
	n.CreatedAt = nostr.Timestamp(time.Now().Unix())
	tags := nostr.Tags{}
	tags = append(tags, nostr.Tag{"hash", block.Hash})
	tags = append(tags, nostr.Tag{"height", fmt.Sprintf("%d", block.Height)})
	tags = append(tags, nostr.Tag{"difficulty", fmt.Sprintf("%d", block.Difficulty)})
	tags = append(tags, nostr.Tag{"minertime", fmt.Sprintf("%d", block.MinerTime.Unix())})
	tags = append(tags, nostr.Tag{"mediantime", fmt.Sprintf("%d", block.MedianTime.Unix())})
	n.Tags = tags
	return
}

func getLatestBlock() (rb blocks.Block, e error) {
	hash, err := getHash()
	if err != nil {
		return rb, err
	}
	return getBlock(hash)
}

func getBlock(hash string) (block blocks.Block, e error) {
	client := &http.Client{}
	req, err := http.NewRequest("GET", actors.MakeOrGetConfig().GetString("blockServer")+"/block/"+hash, nil)
	if err != nil {
		return block, err
	}
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return block, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return block, fmt.Errorf("http response error code %d", resp.StatusCode)
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return block, err
	}
	var responseObject BlockStream
	err = json.Unmarshal(bodyBytes, &responseObject)
	if err != nil {
		spew.Dump(bodyBytes)
		return block, err
	}
	block.MinerTime = time.Unix(responseObject.Timestamp, 0)
	block.MedianTime = time.Unix(responseObject.Mediantime, 0)
	block.Difficulty = responseObject.Difficulty
	block.Height = responseObject.Height
	block.Hash = responseObject.Id
	return
}

func getHash() (string, error) {
	client := &http.Client{}
	req, err := http.NewRequest("GET", actors.MakeOrGetConfig().GetString("blockServer")+"/blocks/tip/hash", nil)
	if err != nil {
		return "", err
	}
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("http response error code %d", resp.StatusCode)
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if len(bodyBytes) != 64 {
		return "", fmt.Errorf("invalid hash")
	}
	return string(bodyBytes), nil
}

type BlockStream struct {
	Id                string `json:"id"`
	Height            int64  `json:"height"`
	Version           int64  `json:"version"`
	Timestamp         int64  `json:"timestamp"`
	TxCount           int64  `json:"tx_count"`
	Size              int64  `json:"size"`
	Weight            int64  `json:"weight"`
	MerkleRoot        string `json:"merkle_root"`
	Previousblockhash string `json:"previousblockhash"`
	Mediantime        int64  `json:"mediantime"`
	Nonce             int64  `json:"nonce"`
	Bits              int64  `json:"bits"`
	Difficulty        int64  `json:"difficulty"`
}
