package favorites

// PruneOptions selects what Prune removes.
type PruneOptions struct {
	Blocklist        Blocklist
	Dedupe           bool
	RecentLimit      int  // 0 disables truncation
	IncludeFavorites bool // also filter the favorites list by the blocklist
}

// PruneResult counts what Prune did to each list.
type PruneResult struct {
	RecentBefore    int
	RecentAfter     int
	FavoritesBefore int
	FavoritesAfter  int
	Removed         []Folder
}

// Changed reports whether any entry was removed.
func (r PruneResult) Changed() bool {
	return len(r.Removed) > 0
}

// Prune removes blocked, duplicate and overflowing entries in place. The
// blocklist runs first so that a blocked duplicate never shadows a kept one.
func (f *File) Prune(opts PruneOptions) PruneResult {
	res := PruneResult{
		RecentBefore:    len(f.RecentFolders),
		FavoritesBefore: len(f.Favorites),
	}

	recent, removed := opts.Blocklist.Filter(f.RecentFolders)
	res.Removed = append(res.Removed, removed...)

	if opts.Dedupe {
		recent, removed = Dedupe(recent)
		res.Removed = append(res.Removed, removed...)
	}

	recent, removed = Truncate(recent, opts.RecentLimit)
	res.Removed = append(res.Removed, removed...)

	if opts.IncludeFavorites {
		var favs []Folder
		favs, removed = opts.Blocklist.Filter(f.Favorites)
		res.Removed = append(res.Removed, removed...)
		f.Favorites = favs
	}

	f.RecentFolders = recent
	res.RecentAfter = len(f.RecentFolders)
	res.FavoritesAfter = len(f.Favorites)
	return res
}
