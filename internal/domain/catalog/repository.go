package catalog

import "context"

type Repository interface {
	GetVeterinarian(ctx context.Context, id int64) (Veterinarian, error)
	ListVeterinarians(ctx context.Context) ([]Veterinarian, error)
	GetService(ctx context.Context, id int64) (Service, error)
	ListServices(ctx context.Context) ([]Service, error)
}
