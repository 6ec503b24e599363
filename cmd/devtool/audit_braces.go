package main

import (
	"fmt"

	"github.com/quickfindr/devtool/internal/braces"
)

type AuditBracesCommand struct {
	env *Env
}

func (c *AuditBracesCommand) Name() string {
	return "audit-braces"
}

func (c *AuditBracesCommand) Description() string {
	return "Report where brace depth goes negative and balance the markup file"
}

func (c *AuditBracesCommand) Run(args []string) error {
	var opts fileOptions
	fs := newFileFlags(c.Name(), c.env.Cfg.SlintFile, c.env.Cfg.Backup, &opts)
	reportOnly := fs.Bool("report-only", false, "Audit without fixing; fail when unbalanced")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	doc, err := readDocument(opts)
	if err != nil {
		return err
	}
	before := doc.Text

	lines, fix := braces.FixLines(doc.Lines())
	report := fix.Report
	for _, imb := range report.Imbalances {
		PrintWarning("Line %d: %s... - depth: %d", imb.Line, imb.Preview, imb.Depth)
	}

	PrintInfo("Final depth: %d", report.Depth)
	PrintInfo("Negative-depth lines: %d", len(report.Imbalances))
	c.env.Log.Debug("brace audit", "path", doc.Path, "depth", report.Depth, "negative_lines", len(report.Imbalances))

	if report.Balanced() {
		PrintSuccess("The file is balanced!")
		return nil
	}

	if report.Depth > 0 {
		PrintInfo("%d closing brace(s) missing", report.Depth)
	} else {
		PrintInfo("%d extra closing brace(s)", -report.Depth)
	}

	if *reportOnly {
		return fmt.Errorf("file is unbalanced (depth %d)", report.Depth)
	}

	if fix.Missing > 0 {
		PrintWarning("%d extra closing brace(s) have no lone '}' line to remove", fix.Missing)
	}
	if !fix.Changed() {
		return fmt.Errorf("could not balance %s", doc.Path)
	}

	doc.SetLines(lines)
	written, err := commit(c.env, doc, before, opts)
	if err != nil {
		return err
	}
	if written {
		PrintSuccess("File fixed!")
	}
	return nil
}
