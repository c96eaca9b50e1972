package main

import (
	"os"

	"github.com/focusplug/focusplug/app"
	"github.com/focusplug/focusplug/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		report.Quit(err)
	}
}
