package main

import (
	"github.com/taskglow/taskglow/internal/cli"
)

func main() {
	cli.Execute()
}
