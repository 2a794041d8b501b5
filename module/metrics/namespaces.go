package metrics

// Prometheus metric namespaces
const (
	namespaceCrown = "crown"
)

// Prometheus metric subsystems under the crown namespace
const (
	subsystemCache    = "cache"
	subsystemRegistry = "registry"
)
