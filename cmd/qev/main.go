package main

import (
	"os"

	"github.com/quickemailverification/quickemailverification-go/internal/command"
)

func main() {
	os.Exit(command.Main(os.Args))
}
