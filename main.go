package main

import "github.com/user/showcut-cli/cmd"

func main() {
	cmd.Execute()
}
