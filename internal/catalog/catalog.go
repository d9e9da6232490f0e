// Package catalog persists reusable pattern templates. The store is
// injected by the shell; the core never decides where templates live.
package catalog

import (
	"context"
	"errors"
	"time"

	"patternsmith/internal/model"
)

// ErrNotFound reports a template name with no stored entry.
var ErrNotFound = errors.New("catalog: template not found")

// Template is one stored pattern document with its catalog metadata.
// Name is the catalog key.
type Template struct {
	Name     string          `json:"name"`
	Note     string          `json:"note,omitempty"`
	SavedAt  time.Time       `json:"savedAt"`
	Document *model.Document `json:"document"`
}

// Store is a template catalog. Implementations return copies; callers
// may mutate what they get back without touching stored state.
type Store interface {
	List(ctx context.Context) ([]Template, error)
	Get(ctx context.Context, name string) (Template, error)
	Put(ctx context.Context, tpl Template) error
	Delete(ctx context.Context, name string) error
}

// normalized validates the template key and stamps a missing save time.
func (t Template) normalized() (Template, error) {
	if t.Name == "" {
		return t, errors.New("catalog: template name required")
	}
	if t.SavedAt.IsZero() {
		t.SavedAt = time.Now().UTC()
	}
	return t, nil
}
