package main

import "revwhoix-cli/cmd"

func main() {
	cmd.Execute()
}
