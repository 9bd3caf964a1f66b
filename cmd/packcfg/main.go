package main

import (
	"github.com/packcfg/packcfg/pkg/cli"
)

func main() {
	cli.Execute()
}
