package main

import "github.com/notargets/golagrange/cmd"

func main() {
	cmd.Execute()
}
