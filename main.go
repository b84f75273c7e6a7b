package main

import "github.com/troop32/mbcscope/cmd"

func main() {
	cmd.Execute()
}
