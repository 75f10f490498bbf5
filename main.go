package main

import "github.com/gqlcheck/gqlcheck/cmd"

func main() {
	cmd.Execute()
}
