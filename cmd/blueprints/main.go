package main

import "github.com/andrescamacho/blueprints-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
