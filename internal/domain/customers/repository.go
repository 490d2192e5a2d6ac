package customers

import "context"

type Repository interface {
	AddCustomer(ctx context.Context, c Customer) (Customer, error)
	UpdateCustomer(ctx context.Context, id int64, p Patch) (Customer, error)
	// DeleteCustomer borra en cascada las mascotas y devuelve sus ids.
	DeleteCustomer(ctx context.Context, id int64) ([]int64, error)
	GetCustomer(ctx context.Context, id int64) (Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
}
