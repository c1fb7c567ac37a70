package main

import "github.com/patchforge/oreg/cmd"

func main() {
	cmd.Execute()
}
