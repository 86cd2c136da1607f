package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/domain"
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	"github.com/brainware-dev/cotizador-api/internal/domain/repository"
)

// ItemUseCase CRUD del catálogo de ítems del usuario.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// Create valida, normaliza y persiste un ítem nuevo del catálogo.
func (uc *ItemUseCase) Create(usuarioID string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.Item{
		ID:            uuid.New().String(),
		UsuarioID:     usuarioID,
		Nombre:        in.Nombre,
		CodigoSKU:     in.CodigoSKU,
		Descripcion:   in.Descripcion,
		PrecioBase:    in.PrecioBase,
		Categoria:     entity.Categoria(in.Categoria),
		Recurrencia:   in.Recurrencia,
		NotasInternas: in.NotasInternas,
		CreadoEn:      time.Now(),
	}
	item.Normalizar()
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List devuelve el catálogo del usuario ordenado por nombre.
func (uc *ItemUseCase) List(usuarioID string) ([]*dto.ItemResponse, error) {
	items, err := uc.itemRepo.ListByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// Update edita un ítem existente del catálogo del usuario. Las líneas de
// cotizaciones ya guardadas no se tocan: conservan su copia desnormalizada.
func (uc *ItemUseCase) Update(usuarioID, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.UsuarioID != usuarioID {
		return nil, domain.ErrForbidden
	}
	item.Nombre = in.Nombre
	item.CodigoSKU = in.CodigoSKU
	item.Descripcion = in.Descripcion
	item.PrecioBase = in.PrecioBase
	item.Categoria = entity.Categoria(in.Categoria)
	item.Recurrencia = in.Recurrencia
	item.NotasInternas = in.NotasInternas
	item.Normalizar()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete borra un ítem del catálogo. Sin protección en cascada: las líneas
// existentes sobreviven con su copia y el render degrada a la etiqueta de
// respaldo si la copia se perdió.
func (uc *ItemUseCase) Delete(usuarioID, id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.UsuarioID != usuarioID {
		return domain.ErrForbidden
	}
	return uc.itemRepo.Delete(id)
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            i.ID,
		Nombre:        i.Nombre,
		CodigoSKU:     i.CodigoSKU,
		Descripcion:   i.Descripcion,
		PrecioBase:    i.PrecioBase,
		Categoria:     string(i.Categoria),
		Recurrencia:   i.Recurrencia,
		NotasInternas: i.NotasInternas,
		CreadoEn:      i.CreadoEn,
	}
}
