package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/seoaudit"
	"github.com/fwojciec/seoaudit/scan"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Source     seoaudit.PageSource
	Auditor    *scan.Auditor
	Emitters   map[seoaudit.Format]seoaudit.ReportEmitter
	Duplicates seoaudit.ReportEmitter
	Store      seoaudit.ReportStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Root        string        `short:"r" default:"." env:"SEOAUDIT_ROOT" help:"Root directory to scan"`
	Output      string        `short:"o" required:"" env:"SEOAUDIT_OUTPUT" help:"Output base path (without extension)"`
	Formats     []string      `short:"f" default:"csv,json" env:"SEOAUDIT_FORMATS" help:"Comma separated report formats: csv, json, sqlite"`
	Concurrency int           `short:"c" default:"4" env:"SEOAUDIT_CONCURRENCY" help:"Number of pages processed in parallel"`
	Timeout     time.Duration `short:"t" default:"0s" help:"Read timeout per file (0 for none)"`
	Verbose     bool          `short:"v" help:"Log every operation to stderr"`
}

// AuditCmd handles the audit operation.
type AuditCmd struct {
	Root    string
	Formats []seoaudit.Format
	Verbose bool
}
