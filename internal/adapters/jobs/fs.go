package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/istinmth/dobble-generator/internal/domain"
	"github.com/istinmth/dobble-generator/internal/ports"
)

// FSStore keeps one JSON file per job next to the exported artifacts.
type FSStore struct {
	dir string
}

func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create jobs dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) Save(_ context.Context, job ports.Job) error {
	path, err := s.jobPath(job.ID)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write job %s: %w", job.ID, err)
	}
	return nil
}

func (s *FSStore) Get(_ context.Context, id string) (ports.Job, error) {
	path, err := s.jobPath(id)
	if err != nil {
		return ports.Job{}, err
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ports.Job{}, fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	if err != nil {
		return ports.Job{}, fmt.Errorf("read job %s: %w", id, err)
	}

	var job ports.Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return ports.Job{}, fmt.Errorf("parse job %s: %w", id, err)
	}
	return job, nil
}

func (s *FSStore) List(ctx context.Context, limit int) ([]ports.Job, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read jobs dir: %w", err)
	}

	var all []ports.Job
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		job, err := s.Get(ctx, strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			// A malformed metadata file should not hide the others.
			continue
		}
		all = append(all, job)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *FSStore) Delete(_ context.Context, id string) error {
	path, err := s.jobPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	} else if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	return nil
}

// jobPath rejects ids that could escape the jobs directory.
func (s *FSStore) jobPath(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("%w: bad id %q", domain.ErrJobNotFound, id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}
