package main

import (
	"dropdate/cmd"
	"os"
)

func main() {
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "schedule")
	}
	cmd.Execute()
}
