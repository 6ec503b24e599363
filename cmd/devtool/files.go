package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/quickfindr/devtool/internal/diff"
	"github.com/quickfindr/devtool/internal/textfile"
)

// fileOptions are the flags shared by every command that rewrites a file
type fileOptions struct {
	path   string
	dryRun bool
	backup bool
}

// newFileFlags builds a flag set for name with -file, -dry-run and -backup
// bound to opts. Defaults come from the config.
func newFileFlags(name, defaultPath string, defaultBackup bool, opts *fileOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.path, "file", defaultPath, "File to repair")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Print the change as a diff without writing it")
	fs.BoolVar(&opts.backup, "backup", defaultBackup, "Copy the file to <file>.bak before overwriting it")
	return fs
}

// parseFlags parses args, turning -h into a nil error after usage is shown
func parseFlags(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	if fs.NArg() > 0 {
		return false, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return true, nil
}

// readDocument loads the markup file named by opts
func readDocument(opts fileOptions) (*textfile.Document, error) {
	return textfile.Read(filepath.Clean(opts.path))
}

// commit writes doc, or shows what would change under -dry-run. before is
// the text as it was read. It reports whether the file was written.
func commit(env *Env, doc *textfile.Document, before string, opts fileOptions) (bool, error) {
	if opts.dryRun {
		changed, err := diff.Render(stdout, doc.Path, before, doc.Text, diff.DefaultContext)
		if err != nil {
			return false, fmt.Errorf("failed to render diff: %w", err)
		}
		if !changed {
			PrintInfo("Dry run: no changes")
			return false, nil
		}
		added, removed := diff.Stats(diff.LineDiff(before, doc.Text))
		PrintInfo("Dry run: %d line(s) added, %d removed, nothing written", added, removed)
		return false, nil
	}

	if err := textfile.Write(doc, opts.backup); err != nil {
		return false, err
	}
	env.Log.Info("file written", "path", doc.Path, "backup", opts.backup, "bytes", len(doc.Text))
	return true, nil
}
