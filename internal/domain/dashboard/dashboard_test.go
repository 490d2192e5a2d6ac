package dashboard

import (
	"testing"
	"time"

	"vet-practice-management/internal/domain/appointments"
)

func TestUpcoming_WindowAndOrder(t *testing.T) {
	now := time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC)
	list := []appointments.Appointment{
		{ID: 1, Date: time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)}, // hoy: fuera
		{ID: 2, Date: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)},
		{ID: 3, Date: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)}, // mañana 00:00: dentro
		{ID: 4, Date: time.Date(2024, 1, 22, 16, 0, 0, 0, time.UTC)}, // now+7d exacto: dentro
		{ID: 5, Date: time.Date(2024, 1, 22, 16, 0, 1, 0, time.UTC)}, // fuera
	}

	got := Upcoming(list, now)
	want := []int64{3, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %d upcoming, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %d, got %d", i, id, got[i].ID)
		}
	}
}
