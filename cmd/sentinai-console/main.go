package main

import "github.com/sentinai/sentinai/internal/cli"

func main() {
	cli.Execute()
}
