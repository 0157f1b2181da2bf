package fieldmeta

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML overlay files.
// When fsys is nil or no overlay files are present, the returned store is
// empty. Template names must be unique across all files.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{templates: make(map[string]Template)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("fieldmeta: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for name, raw := range doc.Templates {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				return fmt.Errorf("fieldmeta: file %s defines an empty template name", path)
			}
			if _, exists := store.templates[trimmed]; exists {
				return fmt.Errorf("fieldmeta: duplicate template %q (file %s)", trimmed, path)
			}
			store.templates[trimmed] = Template{
				Name:   trimmed,
				Source: path,
				Fields: cloneFields(raw.Fields),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

type documentFile struct {
	Templates map[string]templateFile `json:"templates" yaml:"templates"`
}

type templateFile struct {
	Fields map[string]FieldMeta `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("fieldmeta: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("fieldmeta: parse %s: invalid JSON or YAML", source)
}

func cloneFields(fields map[string]FieldMeta) map[string]FieldMeta {
	out := make(map[string]FieldMeta, len(fields))
	for id, meta := range fields {
		cloned := meta
		if len(meta.Extra) > 0 {
			cloned.Extra = make(map[string]string, len(meta.Extra))
			for k, v := range meta.Extra {
				cloned.Extra[k] = v
			}
		}
		out[id] = cloned
	}
	return out
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
