package main

import "ifreport/cmd"

func main() {
	cmd.Execute()
}
