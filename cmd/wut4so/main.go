package main

import (
	"github.com/gmofishsauce/wut4so/internal/cli"
)

func main() {
	cli.Execute()
}
