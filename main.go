package main

import "github.com/marczalik/smallsh/cmd"

func main() {
	cmd.Execute()
}
