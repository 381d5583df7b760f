package actors

import (
	"os"

	"github.com/spf13/viper"
	"bondly/engine/library"
)

// IgnitionEvent is the root of the treasury event tree; every state change
// request replies to it.
const IgnitionEvent string = "a3c5778371af4e4dfa6a97590031ba5d43deb8c0ca0b8f109656ba0d4f76cf52"
const StateChangeRequests string = "5f10e41c7ef1c9b5f6e41cf1a0b35c1955f3e61f15efcb2bbf955a923e6d2bb0"

func InitConfig(config *viper.Viper) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		library.LogCLI(err.Error(), 0)
	}
	config.SetDefault("rootDir", homeDir+"/bondly/")
	config.SetConfigType("yaml")
	config.SetConfigFile(config.GetString("rootDir") + "config.yaml")
	err = config.ReadInConfig()
	if err != nil {
		library.LogCLI(err.Error(), 4)
	}
	config.SetDefault("firstRun", true)
	config.SetDefault("flatFileDir", "data/")
	config.SetDefault("blockServer", "https://blockstream.info/api")
	config.SetDefault("logLevel", 4)
	config.SetDefault("doNotPublish", false)
	config.SetDefault("websocketAddr", "0.0.0.0:1031")
	// Resolve payouts to lightning invoices instead of the in-process ledger.
	config.SetDefault("lightningPayouts", false)
	// Creation fees in native sats, paid to the protocol owner account.
	config.SetDefault("projectCreationFee", int64(10000))
	config.SetDefault("movementCreationFee", int64(0))
	// Accounts allowed to announce bitcoin block headers to the blocks mind.
	config.SetDefault("blockOracles", []string{})
	// The token currency projects are created against by default, and the
	// supply its in-process ledger starts with.
	config.SetDefault("defaultCurrency", "stable")
	config.SetDefault("defaultCurrencySupply", int64(21000000))
	// Accounts used alongside this wallet by the canned project creation
	// procedure.
	config.SetDefault("coOwners", []string{})
	config.SetDefault("relaysMust", []string{"wss://nostr.688.org"})
	config.SetDefault("relaysOptional", []string{"wss://nos.lol", "wss://relay.damus.io"})
	config.SetDefault("backupRelay", "ws://127.0.0.1:45321")
	// Create our working directory and config file if not exist
	initRootDir(config)
	library.Touch(config.GetString("rootDir") + "config.yaml")
	err = config.WriteConfig()
	if err != nil {
		library.LogCLI(err.Error(), 0)
	}
}

func initRootDir(conf *viper.Viper) {
	_, err := os.Stat(conf.GetString("rootDir"))
	if os.IsNotExist(err) {
		err = os.Mkdir(conf.GetString("rootDir"), 0755)
		if err != nil {
			library.LogCLI(err, 0)
		}
	}
}

var conf *viper.Viper

func MakeOrGetConfig() *viper.Viper {
	return conf
}

func SetConfig(config *viper.Viper) {
	conf = config
}
