package main

import "placehub/cmd"

func main() {
	cmd.Execute()
}
