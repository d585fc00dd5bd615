package main

import "github.com/studymate/studymate-backend/internal/cli"

func main() {
	cli.Execute()
}
