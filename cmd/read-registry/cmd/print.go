package cmd

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/defunctec/crowncoin/model/nftoken"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func prettyPrint(entity interface{}) {
	bytes, err := json.MarshalIndent(entity, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("could not marshal entity")
	}
	fmt.Println(string(bytes))
}

// printProtoIndex renders a persisted entry with hex-encoded hashes.
func printProtoIndex(disk *nftoken.ProtoDiskIndex) {
	prettyPrint(struct {
		ProtocolID  uint64 `json:"protocol_id"`
		Owner       string `json:"owner"`
		Metadata    []byte `json:"metadata"`
		BlockHeight int64  `json:"block_height"`
		BlockHash   string `json:"block_hash"`
		RegTxHash   string `json:"reg_tx_hash"`
	}{
		ProtocolID:  uint64(disk.ProtocolID()),
		Owner:       disk.Proto.Owner.String(),
		Metadata:    disk.Proto.Metadata,
		BlockHeight: disk.BlockHeight,
		BlockHash:   disk.BlockHash.String(),
		RegTxHash:   disk.RegTxHash.String(),
	})
}
