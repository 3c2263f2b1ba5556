package main

import (
	"github.com/postline/postline/cmd"
)

func main() {
	cmd.Execute()
}
