package main

import "github.com/jesuszarate/AI-ReinforcementLearning/internal/cli"

func main() {
	cli.Execute()
}
