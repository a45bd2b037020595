package main

import "github.com/nvoss/dirscout/cmd"

func main() {
	cmd.Execute()
}
