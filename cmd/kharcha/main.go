package main

import "kharcha/internal/cli"

func main() {
	cli.Execute()
}
