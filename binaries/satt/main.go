package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/staticafi/satt/cli"
	satterrors "github.com/staticafi/satt/common/errors"
)

// Runs a verification tool on benchmark sets across a pool of machines.
//	satt [tool]          run, results go to the database unless --no-db
//	satt plan [tool]     show how benchmarks are spread over the machines
//	Global flags:
//		--config      configuration file, <tool>.yaml by default
//		--machines    machines file
//		--benchmarks  comma separated .set files or directories
//		--debug       debug logging

func main() {
	if err := cli.NewSimpleCLI(os.Stdout).Exec(); err != nil {
		log.Error(err)
		os.Exit(int(satterrors.GetExitCode(err)))
	}
}
