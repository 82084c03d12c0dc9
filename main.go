package main

import "github.com/csak/csak/cmd"

func main() {
	cmd.Execute()
}
