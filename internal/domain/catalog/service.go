package catalog

import (
	"context"
	"strings"
)

type Catalog struct {
	repo Repository
}

func NewCatalog(repo Repository) *Catalog {
	return &Catalog{repo: repo}
}

func (c *Catalog) Veterinarians(ctx context.Context) ([]Veterinarian, error) {
	return c.repo.ListVeterinarians(ctx)
}

func (c *Catalog) Veterinarian(ctx context.Context, id int64) (Veterinarian, error) {
	return c.repo.GetVeterinarian(ctx, id)
}

// Services filtra opcionalmente por categoría (case-insensitive).
func (c *Catalog) Services(ctx context.Context, category string) ([]Service, error) {
	items, err := c.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return items, nil
	}
	out := make([]Service, 0, len(items))
	for _, s := range items {
		if strings.EqualFold(s.Category, category) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *Catalog) Service(ctx context.Context, id int64) (Service, error) {
	return c.repo.GetService(ctx, id)
}
