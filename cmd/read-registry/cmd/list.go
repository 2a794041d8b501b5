package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/defunctec/crowncoin/model/nftoken"
)

var flagMax uint

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().UintVarP(&flagMax, "max", "m", 100, "maximum number of proto indexes to print")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list proto indexes in ascending protocol ID order",
	Run: func(cmd *cobra.Command, args []string) {
		db, protocols := initStorage()
		defer db.Close()

		printed := uint(0)
		err := protocols.ProcessAllProtoIndexes(func(disk *nftoken.ProtoDiskIndex) bool {
			if printed >= flagMax {
				return false
			}
			printProtoIndex(disk)
			printed++
			return true
		})
		if err != nil {
			log.Fatal().Err(err).Msg("could not list proto indexes")
		}
		log.Info().Msgf("listed %d proto indexes", printed)
	},
}
