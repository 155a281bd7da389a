package main

import (
	"github.com/andrescamacho/chesthunt-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
