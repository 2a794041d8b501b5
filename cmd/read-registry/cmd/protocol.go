package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/defunctec/crowncoin/model/nftoken"
)

var flagProtocolID uint64

func init() {
	rootCmd.AddCommand(protocolCmd)

	protocolCmd.Flags().Uint64VarP(&flagProtocolID, "protocol-id", "p", 0, "the identifier of the protocol")
	_ = protocolCmd.MarkFlagRequired("protocol-id")
}

var protocolCmd = &cobra.Command{
	Use:   "protocol",
	Short: "get proto index by protocol ID",
	Run: func(cmd *cobra.Command, args []string) {
		if nftoken.ProtocolID(flagProtocolID) == nftoken.UnknownProtocolID {
			log.Fatal().Msg("protocol ID 0 is reserved")
		}

		db, protocols := initStorage()
		defer db.Close()

		log.Info().Msgf("getting proto index by id: %v", flagProtocolID)
		disk, err := protocols.ReadProtoIndex(nftoken.ProtocolID(flagProtocolID))
		if err != nil {
			log.Fatal().Err(err).Msg("could not get proto index")
		}

		printProtoIndex(disk)
	},
}
