package main

import "github.com/vietddude/sniffer/internal/cli"

func main() {
	cli.Execute()
}
