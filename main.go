package main

import "scene-toolkit/cmd"

func main() {
	cmd.Execute()
}
