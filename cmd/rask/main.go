// Package main provides the Rask CLI tool.
//
// Usage:
//
//	rask [flags] <resource> <command> [args]
//
// Resources:
//
//	credits        - Remaining credits
//	media          - Media library
//	project        - Dubbing projects
//	lipsync        - Lipsync tasks
//	transcription  - Transcriptions and segments
//	glossary       - Glossaries
//
// Configuration:
//
//	Credentials are read from RASK_CLIENT_ID and RASK_CLIENT_SECRET, or from
//	a .env file given with --env-file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MimeLyc/rask-sdk-go/cmd/rask/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
