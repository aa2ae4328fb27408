package main

import "github.com/calalarm/calalarm/cmd"

func main() {
	cmd.Execute()
}
