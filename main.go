package main

import "github.com/theirongolddev/pocket/cmd"

func main() {
	cmd.Execute()
}
