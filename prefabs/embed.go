package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is where on-disk overrides of the embedded specs are looked up.
var Dir = "prefabs"

// Origin says where a spec was read from.
type Origin string

const (
	OriginDisk     Origin = "disk"
	OriginEmbedded Origin = "embedded"
)

// Load returns the on-disk copy of a spec when present, else the embedded one.
func Load(name string) ([]byte, error) {
	data, _, err := LoadFrom(name)
	return data, err
}

// LoadFrom is Load that also reports which copy was used.
func LoadFrom(name string) ([]byte, Origin, error) {
	clean := specName(name)
	data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean)))
	if err == nil {
		return data, OriginDisk, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, OriginDisk, err
	}
	data, err = PrefabsFS.ReadFile(clean)
	return data, OriginEmbedded, err
}

// Names lists every spec file available, embedded or on disk, sorted.
func Names() ([]string, error) {
	seen := make(map[string]bool)
	embedded, err := fs.Glob(PrefabsFS, "*.yaml")
	if err != nil {
		return nil, err
	}
	for _, n := range embedded {
		seen[n] = true
	}

	entries, err := os.ReadDir(Dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() && isSpecFile(e.Name()) {
			seen[e.Name()] = true
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// specName accepts both "player.yaml" and "prefabs/player.yaml".
func specName(name string) string {
	s := path.Clean(filepath.ToSlash(name))
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}
