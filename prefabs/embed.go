package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is where disk overrides are looked up. Files found there win over the
// embedded copies, which is what makes -watch useful.
var Dir = "prefabs"

var (
	cacheMu sync.Mutex
	cache   = map[string][]byte{}
)

// Load returns a prefab's bytes, preferring the disk copy. Results are cached
// until Invalidate is called for the name.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if clean == "" {
		return nil, fmt.Errorf("prefabs: empty name")
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if data, ok := cache[clean]; ok {
		return data, nil
	}

	data, err := os.ReadFile(diskPath(clean))
	if err != nil {
		data, err = PrefabsFS.ReadFile(clean)
		if err != nil {
			return nil, err
		}
	}
	cache[clean] = data
	return data, nil
}

// Invalidate drops the cached copy of name so the next Load re-reads it.
func Invalidate(name string) {
	clean := cleanPrefabPath(name)
	cacheMu.Lock()
	delete(cache, clean)
	cacheMu.Unlock()
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// EnemyKinds lists the kinds with an embedded enemy_<kind>.yaml prefab.
func EnemyKinds() []string {
	entries, err := fs.Glob(PrefabsFS, "enemy_*.yaml")
	if err != nil {
		return nil
	}
	kinds := make([]string, 0, len(entries))
	for _, name := range entries {
		kinds = append(kinds, strings.TrimSuffix(strings.TrimPrefix(name, "enemy_"), ".yaml"))
	}
	sort.Strings(kinds)
	return kinds
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "prefabs/") {
		return strings.TrimPrefix(s, "prefabs/")
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
