package main

import "github.com/smartworld/smartdesk/cmd"

func main() {
	cmd.Execute()
}
