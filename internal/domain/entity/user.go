package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero" // opera recepciones, traslados y conteos
	RoleOperario  = "operario"  // solo lectura y registro de conteos
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string // único
	Name         string
	PasswordHash string
	Role         string // admin, bodeguero, operario
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
