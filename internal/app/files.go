package app

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/nbted/nbt"
	"github.com/jmoiron/nbted/snbt"
)

// extensions we consider NBT-bearing when scanning a directory.
var nbtExtensions = map[string]bool{
	".nbt":         true,
	".dat":         true,
	".dat_old":     true,
	".snbt":        true,
	".mcstructure": true,
	".litematic":   true,
	".schem":       true,
}

// Entry is one scanned file.
type Entry struct {
	// Rel is the path relative to the store root; it doubles as the
	// entry's URL path.
	Rel  string
	Name string
	Size int64
}

// Store indexes the NBT files under a root directory.
type Store struct {
	root string

	Entries []*Entry
	// entryMap maps a relative path to its entry
	entryMap map[string]*Entry
}

// NewStore scans root for NBT files.
func NewStore(root string) (*Store, error) {
	s := &Store{root: root, entryMap: make(map[string]*Entry)}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() || !nbtExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		e := &Entry{Rel: filepath.ToSlash(rel), Name: d.Name(), Size: info.Size()}
		s.Entries = append(s.Entries, e)
		s.entryMap[e.Rel] = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(s.Entries, func(i, j int) bool { return s.Entries[i].Rel < s.Entries[j].Rel })
	return s, nil
}

// Len returns the number of indexed files.
func (s *Store) Len() int { return len(s.Entries) }

// Entry returns the entry for a relative path, or nil.
func (s *Store) Entry(rel string) *Entry { return s.entryMap[rel] }

// Decoded is a loaded and decoded entry.
type Decoded struct {
	*Entry
	File *nbt.File
	// Raw is the on-disk bytes.
	Raw []byte
}

// Load reads and decodes an entry. SNBT files get a synthetic default
// envelope; binary files go through format detection.
func (s *Store) Load(e *Entry) (*Decoded, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(e.Rel)))
	if err != nil {
		return nil, err
	}
	d := &Decoded{Entry: e, Raw: data}
	if strings.HasSuffix(e.Rel, ".snbt") {
		v, err := snbt.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Rel, err)
		}
		d.File = &nbt.File{Root: v, Named: true, Endian: nbt.EndianBig, Compression: nbt.CompressionNone}
		return d, nil
	}
	f, err := nbt.Read(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", e.Rel, err)
	}
	d.File = f
	return d, nil
}

// Strings collects every string value in the tree, in traversal order.
// The inspector's content search and the color-code preview both feed
// from this.
func (d *Decoded) Strings() []string {
	var out []string
	var walk func(v any)
	walk = func(v any) {
		switch x := v.(type) {
		case string:
			out = append(out, x)
		case []any:
			for _, e := range x {
				walk(e)
			}
		case *nbt.Compound:
			x.Range(func(_ string, v any) bool {
				walk(v)
				return true
			})
		}
	}
	walk(d.File.Root)
	return out
}
