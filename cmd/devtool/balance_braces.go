package main

import (
	"github.com/quickfindr/devtool/internal/braces"
)

type BalanceBracesCommand struct {
	env *Env
}

func (c *BalanceBracesCommand) Name() string {
	return "balance-braces"
}

func (c *BalanceBracesCommand) Description() string {
	return "Balance the markup file using whole-file brace counts"
}

func (c *BalanceBracesCommand) Run(args []string) error {
	var opts fileOptions
	fs := newFileFlags(c.Name(), c.env.Cfg.SlintFile, c.env.Cfg.Backup, &opts)
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	doc, err := readDocument(opts)
	if err != nil {
		return err
	}
	before := doc.Text

	fixed, fix := braces.FixText(doc.Text)
	PrintInfo("Opening braces: %d", fix.Opens)
	PrintInfo("Closing braces: %d", fix.Closes)
	PrintInfo("Difference: %d", fix.Difference())

	switch {
	case fix.Removed > 0 || fix.Missing > 0:
		PrintInfo("Removing %d closing brace(s)", fix.Removed)
		if fix.Missing > 0 {
			PrintWarning("%d extra closing brace(s) have no lone '}' line to remove", fix.Missing)
		}
	case fix.Added > 0:
		PrintInfo("Adding %d closing brace(s)", fix.Added)
	}

	// written even when balanced
	doc.Text = fixed
	written, err := commit(c.env, doc, before, opts)
	if err != nil {
		return err
	}
	if written {
		PrintSuccess("File fixed!")
	}
	return nil
}
