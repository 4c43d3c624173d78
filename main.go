package main

import (
	"github.com/liyang-lab/ConSite/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
