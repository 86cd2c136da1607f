package entity

import "time"

// Usuario representa al emisor de cotizaciones: credenciales y el perfil
// que se resuelve al renderizar documentos (nombre, empresa, logo). El
// perfil no se copia a la cotización; se lee al momento del render.
type Usuario struct {
	ID             string
	Email          string
	PasswordHash   string // hash bcrypt, nunca plano en dominio después de persistir
	NombreCompleto string
	Empresa        string
	Telefono       string
	LogoURL        string
	CreadoEn       time.Time
	ActualizadoEn  time.Time
}
