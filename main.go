package main

import "github.com/Gameminde/Zinouchawebsie/cmd"

func main() {
	cmd.Execute()
}
