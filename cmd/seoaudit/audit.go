package main

import (
	"fmt"

	"github.com/fwojciec/seoaudit"
	"github.com/fwojciec/seoaudit/scan"
)

// Run executes the audit command.
func (c *AuditCmd) Run(deps *Dependencies) error {
	paths, err := deps.Source.Discover(deps.Ctx, c.Root)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seoaudit.ErrorMessage(err))
		return err
	}

	progress := func(e scan.ProgressEvent) {
		switch e.Type {
		case scan.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "Error parsing %s: %v\n", e.Path, e.Error)
		case scan.ProgressCompleted:
			if c.Verbose {
				fmt.Fprintf(deps.Stderr, "[%d/%d] %s (%s)\n", e.Completed, e.Total, scan.TruncatePath(e.Path, 60), scan.FormatBytes(e.Bytes))
			}
		}
	}

	result, err := deps.Auditor.Audit(deps.Ctx, paths, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error auditing: %v\n", err)
		return err
	}

	reports, err := c.emit(deps, seoaudit.NewReport(result.Index))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error writing reports: %v\n", err)
		return err
	}

	fmt.Fprint(deps.Stdout, seoaudit.FormatSummary(result.Index.Summary(seoaudit.DefaultTopTitles), reports))
	return nil
}

// emit stages every selected report plus the duplicates report and commits
// them together. Nothing is left behind if any emitter fails.
func (c *AuditCmd) emit(deps *Dependencies, rep *seoaudit.Report) ([]string, error) {
	for _, f := range c.Formats {
		emitter, ok := deps.Emitters[f]
		if !ok {
			_ = deps.Store.Abort()
			return nil, seoaudit.Errorf(seoaudit.EINVALID, "no emitter for format %q", f)
		}
		if err := c.stage(deps, f.Extension(), emitter, rep); err != nil {
			_ = deps.Store.Abort()
			return nil, err
		}
	}

	if err := c.stage(deps, seoaudit.DuplicatesExtension, deps.Duplicates, rep); err != nil {
		_ = deps.Store.Abort()
		return nil, err
	}

	reports, err := deps.Store.Commit()
	if err != nil {
		_ = deps.Store.Abort()
		return nil, err
	}
	return reports, nil
}

func (c *AuditCmd) stage(deps *Dependencies, ext string, emitter seoaudit.ReportEmitter, rep *seoaudit.Report) error {
	path, err := deps.Store.Stage(ext)
	if err != nil {
		return err
	}
	return emitter.Emit(deps.Ctx, path, rep)
}
