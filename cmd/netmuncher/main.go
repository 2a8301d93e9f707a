package main

import "github.com/circuitkit/netmuncher/cmd/netmuncher/cmd"

func main() {
	cmd.Execute()
}
