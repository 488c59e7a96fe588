package service

import (
	"context"
	"strings"

	"github.com/pkordes/european-living/internal/repo"
)

// TagService implements business logic for day trip tags.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// List returns the names of tags in use, optionally narrowed to those
// starting with prefix (case-insensitive).
func (s *TagService) List(ctx context.Context, prefix string) ([]string, error) {
	return s.tags.List(ctx, strings.TrimSpace(prefix))
}
