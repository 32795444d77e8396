package main

import "github.com/nathanhack/ldpc/cmd"

func main() {
	cmd.Execute()
}
