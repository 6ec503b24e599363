package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/quickfindr/devtool/internal/braces"
	"github.com/quickfindr/devtool/internal/favorites"
	"github.com/quickfindr/devtool/internal/section"
	"github.com/quickfindr/devtool/internal/textfile"
	"github.com/quickfindr/devtool/internal/validation"
)

type DoctorCommand struct {
	env *Env
}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose the markup and favorites files without changing them"
}

func (c *DoctorCommand) Run(args []string) error {
	flags := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	flags.SetOutput(stdout)
	slintPath := flags.String("file", c.env.Cfg.SlintFile, "Markup file to check")
	favoritesPath := flags.String("favorites", "", "favorites.json to check (default: the app's config directory)")
	if ok, err := parseFlags(flags, args); !ok {
		return err
	}

	PrintHeader("Running Doctor...")

	hasError := false

	if err := c.checkMarkup(*slintPath); err != nil {
		PrintError("Markup check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Markup OK")
	}

	if err := c.checkFavorites(*favoritesPath); err != nil {
		PrintError("Favorites check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Favorites OK")
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}

	PrintSuccess("All files look healthy!")
	return nil
}

func (c *DoctorCommand) checkMarkup(path string) error {
	doc, err := textfile.Read(path)
	if err != nil {
		return err
	}
	lines := doc.Lines()

	report := braces.Audit(lines)
	if !report.Balanced() {
		if len(report.Imbalances) > 0 {
			first := report.Imbalances[0]
			PrintWarning("Depth first goes negative at line %d: %s", first.Line, first.Preview)
		}
		return fmt.Errorf("unbalanced braces (final depth %d), run audit-braces", report.Depth)
	}

	if _, err := section.Find(lines); err != nil {
		return fmt.Errorf("%w, run rebuild-section", err)
	}
	return nil
}

func (c *DoctorCommand) checkFavorites(path string) error {
	if path == "" {
		p, err := c.env.Cfg.FavoritesPath()
		if err != nil {
			return err
		}
		path = p
	}

	err := validation.NewSchemaValidator().ValidateFile(path, validation.FavoritesSchema)
	if errors.Is(err, fs.ErrNotExist) {
		PrintWarning("%s does not exist yet", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("the app would discard this file: %w", err)
	}

	file, err := favorites.Load(path)
	if err != nil {
		return err
	}

	// Prune on a throwaway copy: only the count matters here
	res := file.Prune(favorites.PruneOptions{Blocklist: favorites.Blocklist(c.env.Cfg.PrunePrefixes)})
	if res.Changed() {
		return fmt.Errorf("%d blocklisted recent folder(s), run clean-recent", len(res.Removed))
	}
	return nil
}
