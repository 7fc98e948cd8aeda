package main

import "lockvault/cmd/lockvault/cmd"

func main() {
	cmd.Execute()
}
