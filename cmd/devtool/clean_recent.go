package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/quickfindr/devtool/internal/favorites"
	"github.com/quickfindr/devtool/internal/textfile"
)

// stringList collects a repeatable string flag
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("prefix must not be empty")
	}
	*s = append(*s, value)
	return nil
}

type CleanRecentCommand struct {
	env *Env
}

func (c *CleanRecentCommand) Name() string {
	return "clean-recent"
}

func (c *CleanRecentCommand) Description() string {
	return "Drop blocklisted folders from the app's recent folders list"
}

type cleanOptions struct {
	fileOptions
	prefixes  stringList
	dedupe    bool
	limit     int
	tidy      bool
	favorites bool
}

func (c *CleanRecentCommand) parse(args []string) (*cleanOptions, bool, error) {
	opts := &cleanOptions{}
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.path, "file", "", "favorites.json to clean (default: the app's config directory)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "List what would be removed without writing")
	fs.BoolVar(&opts.backup, "backup", c.env.Cfg.Backup, "Copy the file to <file>.bak before overwriting it")
	fs.Var(&opts.prefixes, "prefix", "Path prefix to remove; repeatable (default from QUICKFINDR_PRUNE_PREFIXES)")
	fs.BoolVar(&opts.dedupe, "dedupe", false, "Keep only the most recent entry per path")
	fs.IntVar(&opts.limit, "limit", 0, "Keep at most N recent folders (0 keeps all)")
	fs.BoolVar(&opts.tidy, "tidy", false, "Dedupe and cap recents at QUICKFINDR_RECENT_LIMIT, like the app does")
	fs.BoolVar(&opts.favorites, "favorites", false, "Apply the prefixes to the favorites list too")

	ok, err := parseFlags(fs, args)
	if !ok {
		return nil, false, err
	}
	if opts.limit < 0 {
		return nil, false, fmt.Errorf("-limit must not be negative")
	}

	if len(opts.prefixes) == 0 {
		opts.prefixes = append(opts.prefixes, c.env.Cfg.PrunePrefixes...)
	}
	if opts.tidy {
		opts.dedupe = true
		if opts.limit == 0 {
			opts.limit = c.env.Cfg.RecentLimit
		}
	}
	if opts.path == "" {
		path, err := c.env.Cfg.FavoritesPath()
		if err != nil {
			return nil, false, fmt.Errorf("failed to locate favorites.json: %w", err)
		}
		opts.path = path
	}
	return opts, true, nil
}

func (c *CleanRecentCommand) Run(args []string) error {
	opts, ok, err := c.parse(args)
	if !ok {
		return err
	}

	file, err := favorites.Load(opts.path)
	if err != nil {
		return err
	}

	res := file.Prune(favorites.PruneOptions{
		Blocklist:        favorites.Blocklist(opts.prefixes),
		Dedupe:           opts.dedupe,
		RecentLimit:      opts.limit,
		IncludeFavorites: opts.favorites,
	})
	c.env.Log.Debug("recent folders pruned",
		"path", opts.path,
		"before", res.RecentBefore,
		"after", res.RecentAfter,
		"removed", len(res.Removed),
	)

	PrintInfo("Cleanup: %d -> %d recent folders", res.RecentBefore, res.RecentAfter)
	if opts.favorites {
		PrintInfo("Cleanup: %d -> %d favorites", res.FavoritesBefore, res.FavoritesAfter)
	}

	if !res.Changed() {
		PrintSuccess("Nothing to clean")
		return nil
	}

	if opts.dryRun {
		for _, folder := range res.Removed {
			PrintInfo("would remove %s (%s)", folder.Path, folder.Name)
		}
		PrintInfo("Dry run: nothing written")
		return nil
	}

	if opts.backup {
		if err := textfile.Backup(opts.path); err != nil {
			return err
		}
	}
	if err := file.Save(opts.path); err != nil {
		return err
	}

	PrintSuccess("File cleaned successfully!")
	return nil
}
