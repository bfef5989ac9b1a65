package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// CategoryPatch carries the fields of a partial category update.
type CategoryPatch struct {
	Name        Optional[string]
	Description Optional[string]
}

// Category groups products. Products reference it by id; it does not own them.
type Category struct {
	id          uuid.UUID
	name        string
	description string
	createdAt   time.Time
	updatedAt   *time.Time
}

// NewCategory validates the input and creates a category with a fresh id.
func NewCategory(name, description string) (*Category, error) {
	n, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	return &Category{
		id:          uuid.New(),
		name:        n,
		description: strings.TrimSpace(description),
		createdAt:   now(),
	}, nil
}

// RehydrateCategory rebuilds a stored category without re-stamping it.
func RehydrateCategory(id uuid.UUID, name, description string, createdAt time.Time, updatedAt *time.Time) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c *Category) ID() uuid.UUID {
	return c.id
}

func (c *Category) Name() string {
	return c.name
}

func (c *Category) Description() string {
	return c.description
}

func (c *Category) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Category) UpdatedAt() *time.Time {
	return c.updatedAt
}

// Update replaces both fields and always stamps UpdatedAt.
func (c *Category) Update(name, description string) error {
	n, err := normalizeCategoryName(name)
	if err != nil {
		return err
	}
	c.name = n
	c.description = strings.TrimSpace(description)
	c.touch()
	return nil
}

// PartialUpdate applies the supplied fields. UpdatedAt moves only if a value
// actually changed. Nothing is applied when a supplied value is invalid.
func (c *Category) PartialUpdate(p CategoryPatch) error {
	name, desc := c.name, c.description

	if v, ok := p.Name.Get(); ok {
		n, err := normalizeCategoryName(v)
		if err != nil {
			return err
		}
		name = n
	}
	if v, ok := p.Description.Get(); ok {
		desc = strings.TrimSpace(v)
	}

	if name == c.name && desc == c.description {
		return nil
	}
	c.name = name
	c.description = desc
	c.touch()
	return nil
}

// Clone returns an independent copy.
func (c *Category) Clone() *Category {
	cp := *c
	return &cp
}

func (c *Category) touch() {
	t := now()
	c.updatedAt = &t
}

func normalizeCategoryName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", NewValidationError("name", "category name is required")
	}
	if utf8.RuneCountInString(n) > MaxCategoryNameLength {
		return "", NewValidationError("name",
			fmt.Sprintf("category name cannot exceed %d characters", MaxCategoryNameLength))
	}
	return n, nil
}
