package main

import (
	"github.com/quickfindr/devtool/internal/section"
)

// RebuildAnchoredCommand rebuilds the favorites loop up to the separator comment
type RebuildAnchoredCommand struct {
	env *Env
}

func (c *RebuildAnchoredCommand) Name() string {
	return "rebuild-anchored"
}

func (c *RebuildAnchoredCommand) Description() string {
	return "Rebuild the favorites section up to the separator comment"
}

func (c *RebuildAnchoredCommand) Run(args []string) error {
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

	fixed, n := section.RebuildAnchored(doc.Text)
	c.env.Log.Debug("favorites section rebuilt before separator", "path", doc.Path, "matches", n)
	if n == 0 {
		PrintWarning("Favorites section or separator not found; the file is written unchanged")
	}

	doc.Text = fixed
	written, err := commit(c.env, doc, before, opts)
	if err != nil {
		return err
	}
	if written {
		PrintSuccess("Favorites section rebuilt!")
	}
	return nil
}

// RebuildSectionCommand rebuilds the favorites loop found by brace depth
type RebuildSectionCommand struct {
	env *Env
}

func (c *RebuildSectionCommand) Name() string {
	return "rebuild-section"
}

func (c *RebuildSectionCommand) Description() string {
	return "Rebuild the favorites section located by brace depth"
}

func (c *RebuildSectionCommand) Run(args []string) error {
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

	lines, span, err := section.RebuildByDepth(doc.Lines())
	if err != nil {
		return err
	}
	PrintInfo("Section found from line %d to %d", span.Start+1, span.End+1)

	doc.SetLines(lines)
	written, err := commit(c.env, doc, before, opts)
	if err != nil {
		return err
	}
	if written {
		PrintSuccess("File rebuilt successfully!")
	}
	return nil
}
