package main

import "trendbench/cmd"

func main() {
	cmd.Execute()
}
