package pets

import (
	"context"
	"errors"
	"testing"

	"vet-practice-management/internal/domain/apperr"
)

type testRepo struct {
	items []Pet
}

func (r *testRepo) AddPet(_ context.Context, p Pet) (Pet, error) {
	p.ID = int64(len(r.items) + 1)
	r.items = append(r.items, p)
	return p, nil
}

func (r *testRepo) UpdatePet(_ context.Context, id int64, p Patch) (Pet, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			p.Apply(&r.items[i])
			return r.items[i], nil
		}
	}
	return Pet{}, apperr.ErrNotFound
}

func (r *testRepo) DeletePet(_ context.Context, id int64) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (r *testRepo) GetPet(_ context.Context, id int64) (Pet, error) {
	for _, p := range r.items {
		if p.ID == id {
			return p, nil
		}
	}
	return Pet{}, apperr.ErrNotFound
}

func (r *testRepo) ListPets(_ context.Context) ([]Pet, error) {
	return append([]Pet(nil), r.items...), nil
}

func (r *testRepo) ListPetsByCustomer(_ context.Context, customerID int64) ([]Pet, error) {
	out := []Pet{}
	for _, p := range r.items {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func str(s string) *string { return &s }

func TestCreate_TrimsAndDefaultsAllergies(t *testing.T) {
	svc := NewService(&testRepo{})

	p, err := svc.Create(context.Background(), CreateInput{
		Name:       "  Buddy ",
		Species:    " Dog",
		Breed:      "Golden Retriever  ",
		Weight:     " 30 kg ",
		Allergies:  "   ",
		CustomerID: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Buddy" || p.Species != "Dog" || p.Breed != "Golden Retriever" || p.Weight != "30 kg" {
		t.Fatalf("fields not trimmed: %+v", p)
	}
	if p.Allergies != NoAllergies {
		t.Fatalf("expected %q, got %q", NoAllergies, p.Allergies)
	}
}

func TestUpdate_TrimsPatch(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Name: "Buddy", Species: "Dog", CustomerID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Update(ctx, p.ID, Patch{
		Name:      str("  Max  "),
		Species:   str(" Cat "),
		Breed:     str(" Siamese"),
		Weight:    str("4 kg "),
		Allergies: str(" Chicken "),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := Pet{ID: p.ID, Name: "Max", Species: "Cat", Breed: "Siamese", Weight: "4 kg", Allergies: "Chicken", CustomerID: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if stored, _ := repo.GetPet(ctx, p.ID); stored != want {
		t.Fatalf("stored pet not trimmed: %+v", stored)
	}

	got, err = svc.Update(ctx, p.ID, Patch{Allergies: str("  ")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Allergies != NoAllergies {
		t.Fatalf("expected %q, got %q", NoAllergies, got.Allergies)
	}
}

func TestUpdate_Violations(t *testing.T) {
	svc := NewService(&testRepo{})
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Name: "Buddy", Species: "Dog", CustomerID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(ctx, p.ID, Patch{Name: str("   ")})
	f, ok := apperr.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f["name"] != "required" {
		t.Fatalf("expected name required, got %#v", f)
	}

	if _, err := svc.Update(ctx, 99, Patch{Name: str("Max")}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
