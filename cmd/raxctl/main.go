// Command raxctl is a small CLI and TCP test harness around package rax: a
// line-oriented server for poking at a tree interactively, a benchmark that
// reports insertion throughput and compression, and a bulk loader with an
// optional cache-replay pass.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "raxctl",
	Short: "raxctl drives a rax.Tree from the command line",
}

func main() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
