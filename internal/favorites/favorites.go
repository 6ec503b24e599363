// Package favorites edits the favorites.json file the quick-findr app keeps
// in its config directory.
//
// Only the two folder lists are ever rewritten. Other top-level keys, key
// order and fields of individual entries that this package does not know
// about are kept as they were read.
package favorites

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/quickfindr/devtool/internal/utils"
)

// DefaultRecentLimit is how many recent folders the app itself keeps.
const DefaultRecentLimit = 10

const (
	keyFavorites     = "favorites"
	keyRecentFolders = "recent_folders"
)

// Folder is a bookmarked or recently used directory.
type Folder struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	LastUsed uint64 `json:"last_used"`

	// Raw is the entry as it appeared in the file. Empty for folders built
	// in code.
	Raw string `json:"-"`
}

func (f Folder) rawJSON() (string, error) {
	if f.Raw != "" {
		return f.Raw, nil
	}
	out, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("failed to marshal folder %s: %w", f.Path, err)
	}
	return string(out), nil
}

// File is the on-disk document.
type File struct {
	Favorites     []Folder
	RecentFolders []Folder

	doc []byte
}

// Load reads favorites.json. Missing lists decode as empty ones. Entries
// are read leniently: null fields read as zero values and fractional
// timestamps are truncated.
func Load(path string) (*File, error) {
	doc, err := utils.LoadJSON(path)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

// Parse builds a File from the bytes of a favorites document.
func Parse(doc []byte) (*File, error) {
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return nil, fmt.Errorf("favorites document must be a JSON object")
	}

	favs, err := parseList(root, keyFavorites)
	if err != nil {
		return nil, err
	}
	recent, err := parseList(root, keyRecentFolders)
	if err != nil {
		return nil, err
	}

	return &File{Favorites: favs, RecentFolders: recent, doc: doc}, nil
}

func parseList(root gjson.Result, key string) ([]Folder, error) {
	list := root.Get(key)
	folders := []Folder{}
	if !list.Exists() || list.Type == gjson.Null {
		return folders, nil
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%s must be an array", key)
	}
	for _, entry := range list.Array() {
		folders = append(folders, Folder{
			Path:     entry.Get("path").String(),
			Name:     entry.Get("name").String(),
			LastUsed: entry.Get("last_used").Uint(),
			Raw:      entry.Raw,
		})
	}
	return folders, nil
}

// Bytes returns the document with both lists replaced by the current ones,
// before formatting.
func (f *File) Bytes() ([]byte, error) {
	doc := f.doc
	if len(doc) == 0 {
		doc = []byte("{}")
	}

	for _, list := range []struct {
		key     string
		folders []Folder
	}{
		{keyFavorites, f.Favorites},
		{keyRecentFolders, f.RecentFolders},
	} {
		raw, err := rawList(list.folders)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetRawBytes(doc, list.key, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to update %s: %w", list.key, err)
		}
	}
	return doc, nil
}

func rawList(folders []Folder) ([]byte, error) {
	entries := make([]string, 0, len(folders))
	for _, folder := range folders {
		raw, err := folder.rawJSON()
		if err != nil {
			return nil, err
		}
		entries = append(entries, raw)
	}
	return []byte("[" + strings.Join(entries, ",") + "]"), nil
}

// Save writes the document with two-space indentation.
func (f *File) Save(path string) error {
	doc, err := f.Bytes()
	if err != nil {
		return err
	}
	return utils.SaveJSON(path, doc)
}

// Blocklist matches folder paths by prefix.
type Blocklist []string

// Matches reports whether path starts with any non-empty prefix.
func (b Blocklist) Matches(path string) bool {
	for _, prefix := range b {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Filter returns the folders whose path is not blocked, in their original
// order, and the folders that were dropped.
func (b Blocklist) Filter(folders []Folder) (kept, removed []Folder) {
	kept = make([]Folder, 0, len(folders))
	for _, folder := range folders {
		if b.Matches(folder.Path) {
			removed = append(removed, folder)
			continue
		}
		kept = append(kept, folder)
	}
	return kept, removed
}

// Dedupe keeps the first folder for each path. The recent list is ordered
// most recent first, so the first entry is the one worth keeping.
func Dedupe(folders []Folder) (kept, removed []Folder) {
	seen := make(map[string]bool, len(folders))
	kept = make([]Folder, 0, len(folders))
	for _, folder := range folders {
		if seen[folder.Path] {
			removed = append(removed, folder)
			continue
		}
		seen[folder.Path] = true
		kept = append(kept, folder)
	}
	return kept, removed
}

// Truncate keeps at most limit folders. A limit of zero or less keeps all.
func Truncate(folders []Folder, limit int) (kept, removed []Folder) {
	if limit <= 0 || len(folders) <= limit {
		return folders, nil
	}
	return folders[:limit], folders[limit:]
}
