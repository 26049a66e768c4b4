package fixture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/calumari/jwalk"
	"github.com/go-json-experiment/json"
	"golang.org/x/sync/singleflight"
)

// ErrNoFiles is returned when a path resolves to no JSON files.
var ErrNoFiles = errors.New("no json files resolved")

// Loader reads and merges fixture files.
type Loader struct {
	reg   *jwalk.Registry
	cache bool

	mu        sync.RWMutex
	fileCache map[string]jwalk.Document
	pathCache map[string]jwalk.Document

	group singleflight.Group
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCache keeps decoded files in memory so repeated loads of the same
// path do not hit the disk. Concurrent loads of one path share a read.
func WithCache() LoaderOption {
	return func(l *Loader) {
		l.cache = true
		l.fileCache = make(map[string]jwalk.Document)
		l.pathCache = make(map[string]jwalk.Document)
	}
}

// NewLoader creates a loader decoding with the directives in reg. A nil
// reg uses an empty registry.
func NewLoader(reg *jwalk.Registry, opts ...LoaderOption) (*Loader, error) {
	if reg == nil {
		var err error
		if reg, err = jwalk.NewRegistry(); err != nil {
			return nil, fmt.Errorf("create registry: %w", err)
		}
	}
	l := &Loader{reg: reg}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load reads path and returns the merged root document.
func (l *Loader) Load(path string) (jwalk.Document, error) {
	if !l.cache {
		return l.loadPath(path)
	}
	if doc := l.getPathCache(path); doc != nil {
		return copyDoc(doc), nil
	}
	v, err, _ := l.group.Do(path, func() (any, error) {
		if doc := l.getPathCache(path); doc != nil { // re-check inside flight
			return doc, nil
		}
		doc, err := l.loadPath(path)
		if err != nil {
			return nil, err
		}
		l.setPathCache(path, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return copyDoc(v.(jwalk.Document)), nil
}

// LoadAll loads every path in order and merges the results, later paths
// winning. With WithCache, a file named by several paths is decoded once.
func (l *Loader) LoadAll(paths ...string) (jwalk.Document, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	var merged jwalk.Document
	for _, path := range paths {
		doc, err := l.Load(path)
		if err != nil {
			return nil, err
		}
		merged = mergeDocs(merged, doc)
	}
	return merged, nil
}

func (l *Loader) getPathCache(path string) jwalk.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pathCache[path]
}

func (l *Loader) setPathCache(path string, doc jwalk.Document) {
	l.mu.Lock()
	l.pathCache[path] = doc
	l.mu.Unlock()
}

func (l *Loader) loadPath(path string) (jwalk.Document, error) {
	files, err := resolve(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoFiles)
	}
	sort.Strings(files)

	var merged jwalk.Document
	for _, f := range files {
		doc, err := l.getFile(f)
		if err != nil {
			return nil, err
		}
		merged = mergeDocs(merged, doc)
	}
	return merged, nil
}

// resolve expands path into the JSON files it names.
func resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			if !isJSONFile(path) {
				return nil, fmt.Errorf("%s: not a json file", path)
			}
			return []string{path}, nil
		}
		ents, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, e := range ents {
			if !e.IsDir() && isJSONFile(e.Name()) {
				out = append(out, filepath.Join(path, e.Name()))
			}
		}
		return out, nil
	}
	if !strings.ContainsAny(path, "*?[") { // not a glob
		return nil, fmt.Errorf("%s: path not found", path)
	}
	matches, err := filepath.Glob(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() && isJSONFile(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (l *Loader) getFile(file string) (jwalk.Document, error) {
	if !l.cache {
		return l.readFile(file)
	}
	if d := l.getFileCache(file); d != nil {
		return d, nil
	}
	v, err, _ := l.group.Do("file::"+file, func() (any, error) {
		if d := l.getFileCache(file); d != nil {
			return d, nil
		}
		doc, err := l.readFile(file)
		if err != nil {
			return nil, err
		}
		l.setFileCache(file, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(jwalk.Document), nil
}

func (l *Loader) getFileCache(f string) jwalk.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fileCache[f]
}

func (l *Loader) setFileCache(f string, d jwalk.Document) {
	l.mu.Lock()
	l.fileCache[f] = d
	l.mu.Unlock()
}

func (l *Loader) readFile(file string) (jwalk.Document, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var doc jwalk.Document
	if err := json.UnmarshalRead(f, &doc, json.WithUnmarshalers(jwalk.Unmarshalers(l.reg))); err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}
	return doc, nil
}

func copyDoc(in jwalk.Document) jwalk.Document {
	cp := make(jwalk.Document, len(in))
	copy(cp, in)
	return cp
}

func isJSONFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".json")
}

// mergeDocs returns base with every entry of next applied on top. Nested
// documents merge key by key; any other value replaces the earlier one.
// Neither input is modified.
func mergeDocs(base, next jwalk.Document) jwalk.Document {
	merged := make(jwalk.Document, 0, len(base)+len(next))
	merged = append(merged, base...)
	index := make(map[string]int, len(merged))
	for i, e := range merged {
		index[e.Key] = i
	}
	for _, e := range next {
		pos, ok := index[e.Key]
		if !ok {
			index[e.Key] = len(merged)
			merged = append(merged, e)
			continue
		}
		prev, prevIsDoc := merged[pos].Value.(jwalk.Document)
		cur, curIsDoc := e.Value.(jwalk.Document)
		if prevIsDoc && curIsDoc {
			merged[pos].Value = mergeDocs(prev, cur)
			continue
		}
		merged[pos].Value = e.Value
	}
	return merged
}
