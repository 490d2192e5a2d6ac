package auth

// Section es una entrada navegable de la UI.
type Section string

const (
	SectionDashboard      Section = "dashboard"
	SectionCustomers      Section = "customers"
	SectionAppointments   Section = "appointments"
	SectionMedicalRecords Section = "medical-records"
	SectionInvoices       Section = "invoices"
	SectionSettings       Section = "settings"
)

type NavItem struct {
	Section Section
	Name    string
	Href    string
	Roles   []Role
}

// Navigation en el orden en que se muestra.
var Navigation = []NavItem{
	{SectionDashboard, "Dashboard", "/dashboard", []Role{RoleAdmin, RoleVeterinarian, RoleReceptionist}},
	{SectionCustomers, "Customers", "/customers", []Role{RoleAdmin, RoleReceptionist}},
	{SectionAppointments, "Appointments", "/appointments", []Role{RoleAdmin, RoleVeterinarian, RoleReceptionist}},
	{SectionMedicalRecords, "Medical Records", "/medical-records", []Role{RoleAdmin, RoleVeterinarian}},
	{SectionInvoices, "Invoices", "/invoices", []Role{RoleAdmin, RoleReceptionist}},
	{SectionSettings, "Settings", "/settings", []Role{RoleAdmin}},
}

// CanAccess responde si el rol ve la sección.
func CanAccess(role Role, s Section) bool {
	for _, it := range Navigation {
		if it.Section != s {
			continue
		}
		for _, r := range it.Roles {
			if r == role {
				return true
			}
		}
		return false
	}
	return false
}

// VisibleFor filtra la navegación para un rol.
func VisibleFor(role Role) []NavItem {
	out := make([]NavItem, 0, len(Navigation))
	for _, it := range Navigation {
		if CanAccess(role, it.Section) {
			out = append(out, it)
		}
	}
	return out
}
