// Package catalog expone las entidades de referencia: veterinarios y servicios.
// Solo se crean con el seed.
package catalog

type Veterinarian struct {
	ID             int64
	Name           string
	Specialization string
	Email          string
}

// Service es una prestación facturable; su precio precarga filas de factura.
type Service struct {
	ID       int64
	Name     string
	Price    float64
	Category string
}
