package main

import "github.com/jguhlin/burn/xtask/cmd"

func main() {
	cmd.Execute()
}
