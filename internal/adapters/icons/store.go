package icons

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	// Decoders for the supported icon formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/istinmth/dobble-generator/internal/domain"
	"github.com/istinmth/dobble-generator/internal/ports"
)

const (
	nsDefault = "default"
	nsUser    = "user"

	metadataFile = "metadata.json"
)

var allowedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// metadata is the optional per-set descriptor file.
type metadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// Store reads icon sets from a directory tree with default/ and user/
// namespaces, one set per subdirectory.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir, creating the user namespace
// so uploads work on a fresh data directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, nsUser), 0o755); err != nil {
		return nil, fmt.Errorf("create icons dir: %w", err)
	}
	return &Store{root: dir}, nil
}

func (s *Store) ListSets(_ context.Context) ([]ports.SetInfo, error) {
	var sets []ports.SetInfo
	for _, ns := range []string{nsDefault, nsUser} {
		entries, err := os.ReadDir(filepath.Join(s.root, ns))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s namespace: %w", ns, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			info, err := s.describeSet(ns, e.Name())
			if err != nil {
				return nil, err
			}
			sets = append(sets, info)
		}
	}
	return sets, nil
}

func (s *Store) describeSet(ns, id string) (ports.SetInfo, error) {
	dir := filepath.Join(s.root, ns, id)
	files, err := iconFiles(dir)
	if err != nil {
		return ports.SetInfo{}, err
	}

	info := ports.SetInfo{
		Ref:   ns + ":" + id,
		Name:  displayName(id),
		Count: len(files),
	}
	if meta, err := readMetadata(dir); err == nil {
		if meta.Name != "" {
			info.Name = meta.Name
		}
		info.CreatedAt = meta.CreatedAt
	}
	return info, nil
}

func (s *Store) LoadSet(ctx context.Context, ref string) ([]ports.Icon, error) {
	dir, err := s.setDir(ref)
	if err != nil {
		return nil, err
	}
	files, err := iconFiles(dir)
	if err != nil {
		return nil, err
	}

	icons := make([]ports.Icon, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read icon %s: %w", name, err)
		}
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode icon %s: %w", name, err)
		}
		icons = append(icons, ports.Icon{Name: name, Image: prepare(img)})
	}
	return icons, nil
}

func (s *Store) CreateSet(_ context.Context, name string, files map[string][]byte) (ports.SetInfo, error) {
	id := sanitizeID(name)
	if id == "" {
		return ports.SetInfo{}, fmt.Errorf("%w: unusable set name %q", domain.ErrInvalidSetRef, name)
	}
	dir := filepath.Join(s.root, nsUser, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ports.SetInfo{}, fmt.Errorf("create set dir: %w", err)
	}

	count := 0
	for filename, data := range files {
		base := sanitizeID(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
		ext := strings.ToLower(filepath.Ext(filename))
		if base == "" || !allowedExt[ext] {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, base+ext), data, 0o644); err != nil {
			return ports.SetInfo{}, fmt.Errorf("write icon %s: %w", filename, err)
		}
		count++
	}

	meta := metadata{ID: id, Name: name, Count: count, CreatedAt: time.Now().UTC()}
	raw, err := json.Marshal(meta)
	if err != nil {
		return ports.SetInfo{}, fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFile), raw, 0o644); err != nil {
		return ports.SetInfo{}, fmt.Errorf("write metadata: %w", err)
	}

	return ports.SetInfo{
		Ref:       nsUser + ":" + id,
		Name:      name,
		Count:     count,
		CreatedAt: meta.CreatedAt,
	}, nil
}

func (s *Store) DeleteSet(_ context.Context, ref string) error {
	ns, id, err := parseRef(ref)
	if err != nil {
		return err
	}
	if ns != nsUser {
		return fmt.Errorf("%w: only user sets can be deleted", domain.ErrInvalidSetRef)
	}
	dir := filepath.Join(s.root, ns, id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", domain.ErrSetNotFound, ref)
	}
	return os.RemoveAll(dir)
}

// setDir resolves a ref to an existing set directory.
func (s *Store) setDir(ref string) (string, error) {
	ns, id, err := parseRef(ref)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(s.root, ns, id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", domain.ErrSetNotFound, ref)
	}
	return dir, nil
}

// parseRef splits "namespace:id" and rejects anything that could walk
// out of the data directory.
func parseRef(ref string) (ns, id string, err error) {
	parts := strings.SplitN(ref, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", domain.ErrInvalidSetRef, ref)
	}
	ns, id = parts[0], parts[1]
	if ns != nsDefault && ns != nsUser {
		return "", "", fmt.Errorf("%w: unknown namespace %q", domain.ErrInvalidSetRef, ns)
	}
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", "", fmt.Errorf("%w: %q", domain.ErrInvalidSetRef, ref)
	}
	return ns, id, nil
}

// iconFiles lists the usable icon filenames in dir, sorted for a stable
// symbol-to-icon assignment.
func iconFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read set dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !allowedExt[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

func readMetadata(dir string) (metadata, error) {
	raw, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return metadata{}, err
	}
	var meta metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return metadata{}, err
	}
	return meta, nil
}

// sanitizeID lowercases a name and reduces it to [a-z0-9-].
func sanitizeID(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// displayName turns a directory id into a human-readable fallback name.
func displayName(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
