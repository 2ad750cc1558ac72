package main

import "github.com/yoas/yoas/pkg/cli"

func main() {
	cli.Execute()
}
