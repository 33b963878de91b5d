package main

import "github.com/bryanchriswhite/TableScout/cmd/tablescout/commands"

func main() {
	commands.Execute()
}
