package main

import (
	"github.com/quayle-dev/cssprobe/cmd"
)

func main() {
	cmd.Execute()
}
