package main

import (
	"github.com/defunctec/crowncoin/cmd/read-registry/cmd"
)

func main() {
	cmd.Execute()
}
