package main

import "github.com/goliatone/go-doctemplate/internal/cli"

func main() {
	cli.Execute()
}
