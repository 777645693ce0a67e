package main

import "github.com/chriserin/px/cmd"

func main() {
	cmd.Execute()
}
