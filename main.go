package main

import "ffc/zonectl/cmd"

func main() {
	cmd.Execute()
}
