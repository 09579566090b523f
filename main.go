package main

import "change-sync/cmd"

func main() {
	cmd.Execute()
}
