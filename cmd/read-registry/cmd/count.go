package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(countCmd)
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "get the total protocol count",
	Run: func(cmd *cobra.Command, args []string) {
		db, protocols := initStorage()
		defer db.Close()

		count, err := protocols.ReadTotalProtocolCount()
		if err != nil {
			log.Fatal().Err(err).Msg("could not get total protocol count")
		}
		fmt.Println(count)
	},
}
