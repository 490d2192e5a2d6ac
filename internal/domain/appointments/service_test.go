package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/catalog"
	"vet-practice-management/internal/domain/pets"
)

type testRepo struct {
	lastID int64
	items  []Appointment
}

func (r *testRepo) AddAppointment(_ context.Context, a Appointment) (Appointment, error) {
	r.lastID++
	a.ID = r.lastID
	r.items = append(r.items, a)
	return a, nil
}

func (r *testRepo) UpdateAppointment(_ context.Context, id int64, p Patch) (Appointment, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			p.Apply(&r.items[i])
			return r.items[i], nil
		}
	}
	return Appointment{}, apperr.ErrNotFound
}

func (r *testRepo) DeleteAppointment(_ context.Context, id int64) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (r *testRepo) GetAppointment(_ context.Context, id int64) (Appointment, error) {
	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, apperr.ErrNotFound
}

func (r *testRepo) ListAppointments(_ context.Context) ([]Appointment, error) {
	return append([]Appointment(nil), r.items...), nil
}

// testDir: mascota 1 de cliente 1, mascota 3 de cliente 2, vet 1.
type testDir struct{}

func (testDir) GetPet(_ context.Context, id int64) (pets.Pet, error) {
	switch id {
	case 1:
		return pets.Pet{ID: 1, CustomerID: 1}, nil
	case 3:
		return pets.Pet{ID: 3, CustomerID: 2}, nil
	}
	return pets.Pet{}, apperr.ErrNotFound
}

func (testDir) GetVeterinarian(_ context.Context, id int64) (catalog.Veterinarian, error) {
	if id == 1 {
		return catalog.Veterinarian{ID: 1}, nil
	}
	return catalog.Veterinarian{}, apperr.ErrNotFound
}

var fixedNow = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func newTestService() (*Service, *testRepo) {
	repo := &testRepo{}
	svc := NewService(repo, testDir{}, time.UTC)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func validInput() CreateInput {
	return CreateInput{
		CustomerID:     1,
		PetID:          1,
		VeterinarianID: 1,
		Date:           fixedNow.Add(2 * time.Hour),
		Type:           "Consultation",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	f, ok := apperr.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	return f
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Duration != DefaultDuration || a.Status != StatusScheduled {
		t.Fatalf("expected defaults 30/scheduled, got %d/%s", a.Duration, a.Status)
	}
	if !a.End().Equal(a.Date.Add(30 * time.Minute)) {
		t.Fatalf("unexpected End: %v", a.End())
	}
}

func TestCreate_RejectsPastDateAndBadRefs(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	in := validInput()
	in.Date = fixedNow.Add(-time.Minute)
	if fieldsOf(t, mustErr(svc.Create(ctx, in)))["date"] != "in_past" {
		t.Fatalf("expected in_past")
	}

	in = validInput()
	in.PetID = 3
	if fieldsOf(t, mustErr(svc.Create(ctx, in)))["pet_id"] != "not_owned_by_customer" {
		t.Fatalf("expected not_owned_by_customer")
	}

	in = validInput()
	in.PetID = 99
	in.VeterinarianID = 7
	f := fieldsOf(t, mustErr(svc.Create(ctx, in)))
	if f["pet_id"] != "not_found" || f["veterinarian_id"] != "not_found" {
		t.Fatalf("unexpected violations: %#v", f)
	}

	in = validInput()
	in.Type = "Haircut"
	in.Status = "lost"
	in.Duration = -5
	f = fieldsOf(t, mustErr(svc.Create(ctx, in)))
	if f["type"] != "not_allowed" || f["status"] != "not_allowed" || f["duration"] != "must_be_positive" {
		t.Fatalf("unexpected violations: %#v", f)
	}
}

func TestUpdate_PastAppointmentCanChangeStatus(t *testing.T) {
	svc, repo := newTestService()
	repo.items = []Appointment{{
		ID: 1, CustomerID: 1, PetID: 1, VeterinarianID: 1,
		Date: fixedNow.AddDate(0, 0, -3), Duration: 30, Type: "Check-up", Status: StatusScheduled,
	}}
	repo.lastID = 1

	done := StatusCompleted
	a, err := svc.Update(context.Background(), 1, Patch{Status: &done})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if a.Status != StatusCompleted || a.Type != "Check-up" {
		t.Fatalf("unexpected merge: %+v", a)
	}

	if _, err := svc.Update(context.Background(), 42, Patch{Status: &done}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_FilterKeepsInsertionOrder(t *testing.T) {
	svc, repo := newTestService()
	base := fixedNow.Add(24 * time.Hour)
	repo.items = []Appointment{
		{ID: 1, CustomerID: 1, PetID: 1, Date: base.Add(3 * time.Hour), Status: StatusScheduled},
		{ID: 2, CustomerID: 2, PetID: 3, Date: base, Status: StatusCompleted},
		{ID: 3, CustomerID: 1, PetID: 1, Date: base.Add(time.Hour), Status: StatusConfirmed},
	}

	got, err := svc.List(context.Background(), ListFilter{CustomerID: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("expected [1 3], got %+v", got)
	}

	got, _ = svc.List(context.Background(), ListFilter{Statuses: []Status{StatusCompleted, StatusConfirmed}})
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("expected [2 3], got %+v", got)
	}

	to := base.Add(90 * time.Minute)
	got, _ = svc.List(context.Background(), ListFilter{From: &base, To: &to})
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("expected window [2 3], got %+v", got)
	}
}

func mustErr(_ Appointment, err error) error { return err }
