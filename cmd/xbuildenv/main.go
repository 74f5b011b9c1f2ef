package main

import "xbuildenv/internal/cli"

func main() {
	cli.Execute()
}
