package main

import (
	"github.com/quickfindr/devtool/internal/section"
)

type ReplaceSectionCommand struct {
	env *Env
}

func (c *ReplaceSectionCommand) Name() string {
	return "replace-section"
}

func (c *ReplaceSectionCommand) Description() string {
	return "Rewrite the body of the favorites row with a regex substitution"
}

func (c *ReplaceSectionCommand) Run(args []string) error {
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

	fixed, n := section.ReplaceBody(doc.Text)
	c.env.Log.Debug("favorites row body replaced", "path", doc.Path, "matches", n)
	if n == 0 {
		PrintWarning("No favorites row matched; the file is written unchanged")
	}

	doc.Text = fixed
	written, err := commit(c.env, doc, before, opts)
	if err != nil {
		return err
	}
	if written {
		PrintSuccess("File fixed successfully! (%d section(s) replaced)", n)
	}
	return nil
}
