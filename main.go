package main

import (
	"os"

	"github.com/vikascatering/catering-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
