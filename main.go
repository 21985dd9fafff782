package main

import "github.com/xvierd/focusday/cmd"

func main() {
	cmd.Execute()
}
