package main

import "github.com/amterp/boardkit/internal/cli"

func main() {
	cli.Run()
}
