package main

import (
	"github.com/robotalks/trident/pkg/cli/sh"
	"github.com/robotalks/trident/pkg/serial"
)

//go-build: CGO_ENABLED=0

func init() {
	serial.SetupFlags()
}

func main() {
	sh.Main()
}
