package main

import (
	"fmt"

	"github.com/spf13/viper"
	"bondly/engine/actors"
	"bondly/messaging/eventconductor"
	"bondly/state/payments"
	"bondly/state/tokens"
)

func main() {
	// Various aspects of this application require global and local settings. To keep things
	// clean and tidy we put these settings in a Viper configuration.
	conf := viper.New()

	// Now we initialise this configuration with basic settings that are required on startup.
	actors.InitConfig(conf)
	// make the config accessible globally
	actors.SetConfig(conf)
	fmt.Println("Current wallet: " + actors.MyWallet().Account)

	terminateChan := make(chan struct{})
	actors.SetTerminateChan(terminateChan)

	// The default token contract, custodied and issued by this wallet.
	err := tokens.Register(
		conf.GetString("defaultCurrency"),
		tokens.NewTokenLedger(actors.MyWallet().Account, conf.GetInt64("defaultCurrencySupply")))
	if err != nil {
		actors.LogCLI(err.Error(), 0)
	}

	if conf.GetBool("lightningPayouts") {
		payments.SetPayer(payments.LightningPayer{})
	}

	eventconductor.Start()
	go cliListener()

	<-terminateChan
	actors.GetWaitGroup().Wait()
	actors.LogCLI("Engine has shut down", 4)
}
