package main

import "dropsync/cmd"

func main() {
	cmd.Execute()
}
