package vault

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store reads and writes frontmatter documents under a root directory.
// All paths it accepts and returns are relative to that root with forward
// slashes. The store keeps no state between calls.
type Store struct {
	Root string
}

// NewStore creates a Store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// EnsureLayout creates the top-level vault directories. It is idempotent and
// is called once by the composition root before serving.
func (s *Store) EnsureLayout() error {
	for _, dir := range []string{"vision", "goals", "reflections"} {
		if err := os.MkdirAll(filepath.Join(s.Root, dir), 0755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}
	return nil
}

// Read parses the document at the given relative path. A missing file is not
// an error: Read returns (nil, nil) so callers can treat absence as a normal
// state.
func (s *Store) Read(relPath string) (*Document, error) {
	file, err := os.Open(filepath.Join(s.Root, filepath.FromSlash(relPath)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var frontmatterLines []string
	var bodyLines []string
	inFrontmatter := false
	lineCount := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineCount++

		if lineCount == 1 && line == "---" {
			inFrontmatter = true
			continue
		}

		if inFrontmatter {
			if line == "---" {
				inFrontmatter = false
				continue
			}
			frontmatterLines = append(frontmatterLines, line)
		} else {
			bodyLines = append(bodyLines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var fm map[string]interface{}
	if len(frontmatterLines) > 0 {
		if err := yaml.Unmarshal([]byte(strings.Join(frontmatterLines, "\n")), &fm); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter of %s: %w", relPath, err)
		}
	}

	return &Document{
		Path:        relPath,
		Frontmatter: fm,
		Body:        strings.Join(bodyLines, "\n"),
	}, nil
}

// Write serializes frontmatter and body and persists them at the relative
// path, creating parent directories as needed. The full file content is
// assembled in memory before anything touches the disk.
func (s *Store) Write(relPath string, frontmatter interface{}, body string) error {
	fmData, err := yaml.Marshal(frontmatter)
	if err != nil {
		return fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	content := fmt.Sprintf("---\n%s---\n%s", string(fmData), body)

	abs := filepath.Join(s.Root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return err
	}
	return os.WriteFile(abs, []byte(content), 0644)
}

// Exists reports whether a document is present at the relative path.
func (s *Store) Exists(relPath string) bool {
	_, err := os.Stat(filepath.Join(s.Root, filepath.FromSlash(relPath)))
	return err == nil
}

// List returns the relative paths of all markdown documents under the given
// prefix, sorted by the walk order of the filesystem.
func (s *Store) List(prefix string) ([]string, error) {
	base := filepath.Join(s.Root, filepath.FromSlash(prefix))
	var paths []string

	err := filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), ".md") {
			rel, err := filepath.Rel(s.Root, path)
			if err != nil {
				return err
			}
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return paths, nil
}

// ParseGoal maps a document's frontmatter onto the typed goal struct.
func ParseGoal(d *Document) (*GoalFrontmatter, error) {
	data, err := yaml.Marshal(d.Frontmatter)
	if err != nil {
		return nil, err
	}
	var fm GoalFrontmatter
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return nil, err
	}
	return &fm, nil
}

// ParseReflection maps a document's frontmatter onto the typed reflection struct.
func ParseReflection(d *Document) (*ReflectionFrontmatter, error) {
	data, err := yaml.Marshal(d.Frontmatter)
	if err != nil {
		return nil, err
	}
	var fm ReflectionFrontmatter
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return nil, err
	}
	return &fm, nil
}
