package main

import (
	"os"

	"github.com/orgdesk/orgdesk/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
