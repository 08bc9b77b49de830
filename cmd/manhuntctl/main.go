package main

import "github.com/mkoss/manhunt/internal/cli"

func main() {
	cli.Execute()
}
