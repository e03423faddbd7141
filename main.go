package main

import "github.com/ByLCY/pinned/cmd"

func main() {
	cmd.Execute()
}
