// Package main starts an interactive hit/stand training session in the terminal.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	terminalcmd "github.com/louisbranch/hitstand/internal/cmd/terminal"
	entrypoint "github.com/louisbranch/hitstand/internal/platform/cmd"
)

func main() {
	cfg, err := terminalcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceTerminal))
	log.SetOutput(os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := terminalcmd.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("terminal session: %v", err)
	}
}
