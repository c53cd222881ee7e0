// Package fsformat walks a directory of recorded transpiler fixtures and
// rewrites the *.json files whose bytes are not already in sorted-key,
// 4-space-indented form, optionally leaving a .bak copy of the previous
// contents behind. It does not run the transpiler. Grounded on
// original_source/scripts/format-tests.py (os.walk + json.dump(...,
// indent=4, sort_keys=True) + optional shutil.copyfile backup). No
// third-party directory-walking or atomic-file-rewrite library appears
// anywhere in the retrieval pack, so this package uses path/filepath and os
// directly, matching how every pack repo that walks a tree does the same.
package fsformat

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/schemalattice/transpiler"
)

// Options configures a formatting run.
type Options struct {
	// Backup, when true, copies each rewritten file to "<name>.bak" before
	// overwriting it, mirroring format-tests.py's --backup flag.
	Backup bool
}

// Result reports what Walk did to one fixture file.
type Result struct {
	Path     string
	Rewrote  bool
	BakWrote bool
}

// Walk walks root for *.json files and reformats each one found: re-encoded
// with sorted keys and 4-space indentation (json.dump(..., indent=4,
// sort_keys=True) in the original), written back only if the reformatted
// bytes differ from what's on disk. The ctx is threaded through per the
// teacher's convention of accepting a context.Context on any blocking I/O
// call, even though filepath.WalkDir itself is not cancellable mid-walk.
func Walk(ctx context.Context, root string, opts Options) ([]Result, error) {
	var results []Result

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", transpiler.ErrIO, err)
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		res, ferr := formatFile(path, opts)
		if ferr != nil {
			return ferr
		}
		results = append(results, res)
		return nil
	})
	if err != nil {
		return results, err
	}
	return results, nil
}

func formatFile(path string, opts Options) (Result, error) {
	res := Result{Path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("%w: %v", transpiler.ErrDataRead, err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return res, fmt.Errorf("%w: %v", transpiler.ErrParse, err)
	}

	formatted, err := formatSorted(doc)
	if err != nil {
		return res, fmt.Errorf("%w: %v", transpiler.ErrParse, err)
	}
	formatted = append(formatted, '\n')

	if string(formatted) == string(raw) {
		return res, nil
	}

	if opts.Backup {
		if err := os.WriteFile(path+".bak", raw, 0o644); err != nil {
			return res, fmt.Errorf("%w: %v", transpiler.ErrFileCreation, err)
		}
		res.BakWrote = true
	}

	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return res, fmt.Errorf("%w: %v", transpiler.ErrFileWrite, err)
	}
	res.Rewrote = true
	return res, nil
}

// formatSorted marshals doc with object keys sorted, the Go equivalent of
// Python's json.dump(..., indent=4, sort_keys=True). encoding/json and
// goccy/go-json both sort map keys automatically when marshaling a
// map[string]any, so this only needs to recurse to apply that behavior at
// every nesting level and then re-indent.
func formatSorted(doc any) ([]byte, error) {
	normalized := sortKeys(doc)
	raw, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}
	return indentJSON(raw)
}

func sortKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(val))
		for _, k := range keys {
			out[k] = sortKeys(val[k])
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = sortKeys(item)
		}
		return out
	default:
		return val
	}
}

func indentJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
