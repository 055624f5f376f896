package main

import "keyline/cmd"

func main() {
	cmd.Execute()
}
