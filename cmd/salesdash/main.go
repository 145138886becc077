package main

import "salesdash/internal/cli"

func main() {
	cli.Execute()
}
