package cmd

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	bstorage "github.com/defunctec/crowncoin/storage/badger"
)

var (
	flagDatadir string
)

// run with `./read-registry --datadir /var/crown/data/registry <command>`
var rootCmd = &cobra.Command{
	Use:   "read-registry",
	Short: "read the protocol registry database",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDatadir, "datadir", "d", "data", "directory to the registry badger database (env DATADIR)")
	_ = rootCmd.MarkPersistentFlagRequired("datadir")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.AutomaticEnv()
	// DATADIR in the environment stands in for --datadir; the flag
	// wins when both are given
	if dir := viper.GetString("datadir"); dir != "" && !rootCmd.PersistentFlags().Changed("datadir") {
		_ = rootCmd.PersistentFlags().Set("datadir", dir)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// initStorage opens the registry database read-only. The caller owns
// the returned handle and must close it.
func initStorage() (*badger.DB, *bstorage.Protocols) {
	db, err := badger.Open(badger.DefaultOptions(flagDatadir).
		WithReadOnly(true).
		WithLogger(nil))
	if err != nil {
		log.Fatal().Err(err).Msg("could not open key-value store")
	}
	return db, bstorage.NewProtocols(db)
}
