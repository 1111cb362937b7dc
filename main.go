package main

import "bakehouse/zipporder/cmd"

func main() {
	cmd.Execute()
}
