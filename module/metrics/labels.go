package metrics

const (
	LabelResource = "resource"
)

const (
	ResourceNftProtoIndex = "nft_proto_index" // protocol registry, in-memory index
)
