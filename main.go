package main

import "github.com/hexlane/dappdesk/cmd"

func main() {
	cmd.Execute()
}
