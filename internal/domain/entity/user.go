package entity

import "time"

// Roles válidos para User. El mayorista opera con admin y staff; los
// compradores (minoristas agro) tienen rol retailer.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleRetailer = "retailer"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	BusinessName string // razón social del minorista (vacío para staff)
	Phone        string
	Role         string // admin, staff, retailer
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Snapshot devuelve la copia congelada del comprador que se incrusta en el pedido.
func (u *User) Snapshot() CustomerSnapshot {
	return CustomerSnapshot{
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		BusinessName: u.BusinessName,
	}
}
