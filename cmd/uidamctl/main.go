package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/commands"
)

func main() {
	displayAppname(os.Getenv("APP_NAME"))
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func displayAppname(appname string) {
	if appname == "" {
		appname = "uidamctl"
	}
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
