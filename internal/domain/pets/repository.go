package pets

import "context"

type Repository interface {
	// AddPet falla con apperr.ErrNotFound si el cliente no existe.
	AddPet(ctx context.Context, p Pet) (Pet, error)
	UpdatePet(ctx context.Context, id int64, p Patch) (Pet, error)
	DeletePet(ctx context.Context, id int64) error
	GetPet(ctx context.Context, id int64) (Pet, error)
	ListPets(ctx context.Context) ([]Pet, error)
	ListPetsByCustomer(ctx context.Context, customerID int64) ([]Pet, error)
}
