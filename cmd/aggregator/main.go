package main

import (
	"github.com/joho/godotenv"

	"redflag-aggregator/commands"
)

func main() {
	_ = godotenv.Load()
	commands.Execute()
}
