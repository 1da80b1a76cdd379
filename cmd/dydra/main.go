package main

import (
	"github.com/dydra/dydra/cmd/dydra/cmd"
)

func main() {
	cmd.Execute()
}
