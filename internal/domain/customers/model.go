package customers

// Customer es el dueño de una o más mascotas.
// El email se valida como único en el servicio, no en el store.
type Customer struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Address string
}

// Patch para merge parcial: nil = no tocar.
type Patch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

func (p Patch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
}
