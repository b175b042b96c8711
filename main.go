package main

import "github.com/juanibiapina/venue/cmd"

func main() {
	cmd.Execute()
}
