package repository

import "github.com/brainware-dev/cotizador-api/internal/domain/entity"

// ItemRepository puerto de persistencia del catálogo de ítems.
// GetByID devuelve (nil, nil) cuando el ítem no existe: la resolución de
// una referencia desde una línea es débil y puede fallar sin ser error.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	ListByUsuario(usuarioID string) ([]*entity.Item, error)
	Update(item *entity.Item) error
	Delete(id string) error
}
