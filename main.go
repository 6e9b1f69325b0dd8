package main

import "recipes-be/internal/cli"

func main() {
	cli.Execute()
}
