package main

import "gcodegen/internal/cli"

func main() {
	cli.Execute()
}
