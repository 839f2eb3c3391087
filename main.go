package main

import "github.com/douhashi/issuenum/cmd"

func main() {
	cmd.Execute()
}
