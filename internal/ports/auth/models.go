package auth

// Role de un usuario del staff de la clínica.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleVeterinarian Role = "veterinarian"
	RoleReceptionist Role = "receptionist"
)

// Claims representa la identidad extraída del token de sesión (sin secretos).
type Claims struct {
	UserID    int64
	Username  string
	Role      Role
	Name      string
	SessionID string
}
