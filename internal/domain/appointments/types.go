package appointments

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no-show"
)

var Statuses = []string{
	string(StatusScheduled),
	string(StatusConfirmed),
	string(StatusInProgress),
	string(StatusCompleted),
	string(StatusCancelled),
	string(StatusNoShow),
}

// Types es el vocabulario fijo de tipos de cita.
var Types = []string{
	"Consultation",
	"Vaccination",
	"Surgery",
	"Dental Cleaning",
	"Check-up",
	"Emergency",
	"Follow-up",
	"Grooming",
	"Spay/Neuter",
	"X-Ray",
	"Blood Work",
}

// DefaultDuration en minutos.
const DefaultDuration = 30
