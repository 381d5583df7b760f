package main

import (
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/eiannone/keyboard"
	"bondly/engine/actors"
	"bondly/engine/library"
	"bondly/messaging/blocks"
	"bondly/messaging/eventconductor"
	"bondly/state/fees"
	"bondly/state/movements"
	"bondly/state/projects"
	"bondly/state/replay"
)

// Slugs produced by the canned procedures below, so follow-up keys have
// something to act on.
var lastProject library.ProjectID
var lastMovement library.MovementID

// cliListener is a cheap and nasty way to speed up development cycles. It listens for keypresses and executes commands.
func cliListener() {
	fmt.Println("VIEW CURRENT STATE:\np: projects\nm: movements\nf: fees collected\nb: bitcoin tip\nw: current wallet\nc: engine config\nC: state change events\n1-5: publish canned state change requests\nq: to quit\nSee cliListener.go for more")
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
		case "p":
			for id, project := range projects.GetMap() {
				fmt.Printf("\n--------- Project: %s -----------\n", id)
				fmt.Printf("Name: %s\nCreated By: %s\nOwners: %v\nApproval Threshold: %d\nCurrency: %s\nStable Balance: %d\nNative Balance: %d\n",
					project.Name, project.CreatedBy, project.Owners, project.ApprovalThreshold, project.Currency, project.BalanceStable, project.BalanceNative)
			}
			fmt.Printf("\nTotal Projects: %d\n", projects.TotalProjects())
		case "m":
			for id, movement := range movements.GetMap() {
				fmt.Printf("\n--------- Movement: %s -----------\n", id)
				spew.Dump(movement)
			}
			fmt.Printf("\nTotal Movements: %d\n", movements.TotalMovements())
		case "f":
			fmt.Printf("Total fees collected: %d\n", fees.TotalCollected())
			for account, paid := range fees.GetMap() {
				fmt.Printf("Account: %s Paid: %d\n", account, paid)
			}
		case "b":
			if tip, ok := blocks.Tip(); ok {
				fmt.Printf("Tip Height: %d\nHash: %s\nMiner Time: %s\n", tip.Height, tip.Hash, tip.MinerTime.String())
			} else {
				fmt.Println("no blocks witnessed yet")
			}
		case "w":
			fmt.Printf("Current Wallet: \n%s\n", actors.MyWallet().Account)
		case "c":
			fmt.Println("CURRENT CONFIG")
			for key, v := range actors.MakeOrGetConfig().AllSettings() {
				fmt.Printf("\nKey: %s; Value: %v\n", key, v)
			}
		case "C":
			fmt.Println("ALL STATE CHANGE EVENTS HANDLED BY THIS ENGINE:")
			for sha256, handledAt := range replay.GetMap() {
				e := eventconductor.GetEventFromCache(sha256)
				fmt.Printf("\nID: %s Kind: %d Signed By: %s\nHandled At: %s\nTags: %#v\nContent: %s\n",
					e.ID, e.Kind, e.PubKey, time.Unix(handledAt, 0).String(), e.Tags, e.Content)
			}
		case "1":
			// Create a project owned by this wallet and the configured
			// co-owners, requiring two approvals.
			owners := append([]library.Account{actors.MyWallet().Account},
				actors.MakeOrGetConfig().GetStringSlice("coOwners")...)
			event, err := projects.CreateProjectEvent("", "Pizza Fund", "shared treasury for friday pizza", owners, 2, actors.MakeOrGetConfig().GetString("defaultCurrency"))
			if err != nil {
				fmt.Println(err.Error())
				break
			}
			if slug, ok := library.GetOpData(event, "create.project"); ok {
				lastProject = slug
			}
			eventconductor.Publish(event)
			fmt.Printf("published project creation request %s for slug %s\n", event.ID, lastProject)
		case "2":
			event, err := projects.FundProjectEvent(lastProject, 240, 0)
			if err != nil {
				fmt.Println(err.Error())
				break
			}
			eventconductor.Publish(event)
			fmt.Printf("published funding request %s for project %s\n", event.ID, lastProject)
		case "3":
			event, err := movements.CreateMovementEvent("", lastProject, "one large margherita", "", 199, 0, actors.MyWallet().Account)
			if err != nil {
				fmt.Println(err.Error())
				break
			}
			if slug, ok := library.GetOpData(event, "create.movement"); ok {
				lastMovement = slug
			}
			eventconductor.Publish(event)
			fmt.Printf("published movement proposal %s for slug %s\n", event.ID, lastMovement)
		case "4":
			event, err := movements.ApproveMovementEvent(lastMovement)
			if err != nil {
				fmt.Println(err.Error())
				break
			}
			eventconductor.Publish(event)
			fmt.Printf("published approval %s for movement %s\n", event.ID, lastMovement)
		case "5":
			event, err := movements.RejectMovementEvent(lastMovement)
			if err != nil {
				fmt.Println(err.Error())
				break
			}
			eventconductor.Publish(event)
			fmt.Printf("published rejection %s for movement %s\n", event.ID, lastMovement)
		case "q":
			actors.Shutdown()
			return
		}
	}
}
