package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/inductorhtn/htnplan/cmd/htnplan"
)

func main() {
	if err := htnplan.Command(nil).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
