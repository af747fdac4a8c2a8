package main

import "github.com/marczieee/featurepipe/pkg/cmd"

func main() {
	cmd.Execute()
}
