package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/application/ports"
	"github.com/brainware-dev/cotizador-api/internal/domain"
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	"github.com/brainware-dev/cotizador-api/internal/domain/repository"
)

// Timeout de las llamadas al LLM. El adaptador tiene además su propio
// timeout de red; este corta la operación completa desde el caller.
const aiTimeout = 20 * time.Second

// AIUseCase asistentes de IA: mapeo de texto libre a ítems del catálogo
// (ai-cotizar) y reescritura de textos del documento (ai-escribir).
type AIUseCase struct {
	llm      ports.LLMService
	itemRepo repository.ItemRepository
}

// NewAIUseCase construye el caso de uso.
func NewAIUseCase(llm ports.LLMService, itemRepo repository.ItemRepository) *AIUseCase {
	return &AIUseCase{llm: llm, itemRepo: itemRepo}
}

// Cotizar arma el catálogo del usuario, pide el mapeo al modelo y aplica
// el contrato de mundo cerrado: cualquier propuesta cuyo item_id no exista
// en el catálogo se mueve a no_encontrados en lugar de descartarse en
// silencio o fabricar un ID nuevo. Ninguna propuesta muta estado; el
// borrador viaja al formulario y solo se persiste si el usuario guarda.
func (uc *AIUseCase) Cotizar(ctx context.Context, usuarioID, mensaje string) (*dto.AICotizarResponse, error) {
	if mensaje == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.itemRepo.ListByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	catalogo := make([]dto.ItemCatalogoAI, 0, len(items))
	porID := make(map[string]*entity.Item, len(items))
	for _, it := range items {
		catalogo = append(catalogo, dto.ItemCatalogoAI{
			ID:         it.ID,
			Nombre:     it.Nombre,
			CodigoSKU:  it.CodigoSKU,
			PrecioBase: it.PrecioBase,
		})
		porID[it.ID] = it
	}

	ctx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	borrador, err := uc.llm.MapearCotizacion(ctx, mensaje, catalogo)
	if err != nil {
		return nil, err
	}

	// Revalidación de mundo cerrado: el modelo promete usar solo IDs del
	// catálogo, pero el contrato se hace cumplir aquí, no por confianza.
	validados := make([]dto.AIItemPropuesto, 0, len(borrador.Items))
	for _, p := range borrador.Items {
		item, ok := porID[p.ItemID]
		if !ok {
			borrador.NoEncontrados = append(borrador.NoEncontrados, p.Nombre)
			continue
		}
		if p.Cantidad < 1 {
			p.Cantidad = 1
		}
		if p.PrecioUnitario.LessThanOrEqual(decimal.Zero) {
			p.PrecioUnitario = item.PrecioBase
		}
		if p.Nombre == "" {
			p.Nombre = item.Nombre
		}
		validados = append(validados, p)
	}
	borrador.Items = validados
	if borrador.NoEncontrados == nil {
		borrador.NoEncontrados = []string{}
	}
	return borrador, nil
}

// Escribir mejora un texto de la cotización con el contexto indicado.
func (uc *AIUseCase) Escribir(ctx context.Context, texto, contexto string) (string, error) {
	if texto == "" {
		return "", domain.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()
	return uc.llm.MejorarTexto(ctx, texto, contexto)
}
