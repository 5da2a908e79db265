package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"PriceSampler/internal/domain/models"
	"PriceSampler/internal/domain/repository"
	"PriceSampler/pkg/util"
)

// FSCatalog lists group directories on the local filesystem.
type FSCatalog struct {
	ext string
}

// NewFSCatalog creates a catalog matching files that end with ext.
func NewFSCatalog(ext string) repository.SourceCatalog {
	return &FSCatalog{ext: ext}
}

func (c *FSCatalog) List(ctx context.Context, group models.Group) ([]models.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrGroupUnavailable, err)
	}
	info, err := os.Stat(group.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrGroupUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", models.ErrGroupUnavailable, group.Dir)
	}

	entries, err := os.ReadDir(group.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrGroupUnavailable, err)
	}

	var sources []models.Source
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, c.ext) {
			continue
		}
		sources = append(sources, models.Source{
			ID:    util.TrimExt(name, c.ext),
			Name:  name,
			Group: group.Name,
			Path:  filepath.Join(group.Dir, name),
		})
	}
	if len(sources) == 0 {
		return nil, models.ErrGroupEmpty
	}
	return sources, nil
}
