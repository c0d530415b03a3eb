// Package main runs the attrition Monte Carlo from the command line.
package main

import (
	"flag"
	"os"

	"opsim/internal/config"

	opsimcmd "opsim/internal/cmd/opsim"
)

func main() {
	cfg, err := opsimcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	if err := opsimcmd.Run(cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
