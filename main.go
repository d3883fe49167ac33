package main

import (
	"os"

	"github.com/GoMailComposer/GoMailComposer/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
