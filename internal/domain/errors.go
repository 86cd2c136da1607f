package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrAIUnparsable distingue "el modelo respondió algo que no es el JSON
	// esperado" de un fallo de red contra el proveedor. El primero no se
	// soluciona reintentando con el mismo input; el segundo sí puede.
	ErrAIUnparsable = errors.New("la respuesta de la IA no tiene el formato esperado")

	// ErrEmailRejected indica que el proveedor de correo rechazó el envío
	// (error lógico del proveedor, no de transporte).
	ErrEmailRejected = errors.New("el proveedor de correo rechazó el envío")
)
