package main

import "scene-crowdin/internal/cli"

func main() {
	cli.Execute()
}
