package main

import "github.com/sapyyens/Dashboard--EDA-robloxmania/cmd"

func main() {
	cmd.Execute()
}
