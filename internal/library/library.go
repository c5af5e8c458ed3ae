// Package library saves parsed expressions as human-readable text files
// with an embedded JSON block, and loads them back.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Swanand58/math-ai-agent/internal/expression"
	"github.com/Swanand58/math-ai-agent/internal/normalize"
)

// DefaultDir is used when neither a flag nor MATHAGENT_EXPRESSIONS_DIR
// names a directory.
const DefaultDir = "expressions"

// Marker introduces the JSON block of a saved file.
const Marker = "JSON Representation:"

// ErrNotFound is returned when a named file does not exist.
var ErrNotFound = errors.New("expression file not found")

// Library is a directory of saved expression files.
type Library struct {
	dir string
	now func() time.Time
}

// New returns a Library rooted at dir. An empty dir means DefaultDir.
func New(dir string) *Library {
	if dir == "" {
		dir = DefaultDir
	}
	return &Library{dir: dir, now: time.Now}
}

// DirFromEnv returns MATHAGENT_EXPRESSIONS_DIR, or DefaultDir when unset.
func DirFromEnv() string {
	if d := os.Getenv("MATHAGENT_EXPRESSIONS_DIR"); d != "" {
		return d
	}
	return DefaultDir
}

// Dir returns the library directory.
func (l *Library) Dir() string { return l.dir }

// Save writes e to the library and returns the path written. An empty name
// derives one from the MathJS form and the current time.
func (l *Library) Save(e *expression.Expression, name string) (string, error) {
	if e == nil {
		return "", errors.New("save: nothing to save")
	}
	if name == "" {
		name = l.defaultName(e)
	}
	path := l.resolve(name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(Format(e)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Load reads a saved file. The embedded JSON block is preferred; when it is
// missing or invalid the whole file goes through the response normalizer.
func (l *Library) Load(name string) (*expression.Expression, error) {
	path := l.resolve(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(data))
}

// List returns the names of saved files, newest first. The directory is
// created if it does not exist.
func (l *Library) List() ([]string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", l.dir, err)
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.dir, err)
	}

	type file struct {
		name string
		mod  time.Time
	}
	var files []file
	for _, ent := range entries {
		if ent.IsDir() || filepath.Ext(ent.Name()) != ".txt" {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			continue
		}
		files = append(files, file{name: ent.Name(), mod: info.ModTime()})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].mod.Equal(files[j].mod) {
			return files[i].name > files[j].name
		}
		return files[i].mod.After(files[j].mod)
	})

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.name
	}
	return names, nil
}

// Format renders the on-disk form of e.
func Format(e *expression.Expression) string {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		// Expression marshaling only fails on non-finite latency.
		data = []byte("{}")
	}
	return e.Display() + "\n\n" + Marker + "\n" + string(data)
}

// Parse decodes the content of a saved file.
func Parse(content string) (*expression.Expression, error) {
	if block, ok := jsonBlock(content); ok {
		var e expression.Expression
		if err := json.Unmarshal([]byte(block), &e); err == nil {
			return &e, nil
		}
	}

	e, err := normalize.Normalize(normalize.Text(content))
	if err != nil {
		return nil, fmt.Errorf("parse saved expression: %w", err)
	}
	return e, nil
}

// jsonBlock returns the text after the last line consisting of Marker.
func jsonBlock(content string) (string, bool) {
	lines := strings.SplitAfter(content, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == Marker {
			return strings.Join(lines[i+1:], ""), true
		}
	}
	return "", false
}

func (l *Library) defaultName(e *expression.Expression) string {
	clean := strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(e.MathJS())
	if r := []rune(clean); len(r) > 20 {
		clean = string(r[:20])
	}
	return fmt.Sprintf("expr_%s_%s.txt", clean, l.now().Format("20060102_150405"))
}

// resolve places name inside the library directory and adds the .txt
// suffix when missing.
func (l *Library) resolve(name string) string {
	if !strings.HasSuffix(name, ".txt") {
		name += ".txt"
	}
	if filepath.IsAbs(name) {
		return name
	}
	clean := filepath.Clean(name)
	dir := filepath.Clean(l.dir)
	if clean == dir || strings.HasPrefix(clean, dir+string(filepath.Separator)) {
		return clean
	}
	return filepath.Join(l.dir, name)
}
