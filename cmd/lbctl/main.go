package main

import "github.com/mcoot/connections-leaderboard/internal/cli"

func main() {
	cli.Execute()
}
