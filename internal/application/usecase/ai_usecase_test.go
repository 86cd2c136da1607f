package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/domain"
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
)

type stubLLM struct {
	respuesta *dto.AICotizarResponse
	err       error
}

func (s *stubLLM) MapearCotizacion(_ context.Context, _ string, _ []dto.ItemCatalogoAI) (*dto.AICotizarResponse, error) {
	return s.respuesta, s.err
}

func (s *stubLLM) MejorarTexto(_ context.Context, texto, _ string) (string, error) {
	return "mejorado: " + texto, s.err
}

type stubItemRepo struct {
	items []*entity.Item
}

func (r *stubItemRepo) Create(*entity.Item) error            { return nil }
func (r *stubItemRepo) GetByID(string) (*entity.Item, error) { return nil, nil }
func (r *stubItemRepo) ListByUsuario(string) ([]*entity.Item, error) {
	return r.items, nil
}
func (r *stubItemRepo) Update(*entity.Item) error { return nil }
func (r *stubItemRepo) Delete(string) error       { return nil }

func catalogoDePrueba() *stubItemRepo {
	return &stubItemRepo{items: []*entity.Item{
		{ID: "item-1", UsuarioID: "user-1", Nombre: "Landing page", PrecioBase: decimal.NewFromInt(800000), Categoria: entity.CategoriaPagoUnico},
		{ID: "item-2", UsuarioID: "user-1", Nombre: "Hosting", PrecioBase: decimal.NewFromInt(50000), Categoria: entity.CategoriaPagoRecurrente, Recurrencia: entity.RecurrenciaMes},
	}}
}

func TestCotizar_MundoCerrado(t *testing.T) {
	llm := &stubLLM{respuesta: &dto.AICotizarResponse{
		ClienteNombre: "Acme SAS",
		Items: []dto.AIItemPropuesto{
			{ItemID: "item-1", Nombre: "Landing page", Cantidad: 1, PrecioUnitario: decimal.NewFromInt(800000)},
			// El modelo alucinó un ID que no está en el catálogo.
			{ItemID: "item-999", Nombre: "App móvil", Cantidad: 1, PrecioUnitario: decimal.NewFromInt(5000000)},
		},
	}}
	uc := NewAIUseCase(llm, catalogoDePrueba())

	resp, err := uc.Cotizar(context.Background(), "user-1", "necesito una landing y una app móvil")
	require.NoError(t, err)

	require.Len(t, resp.Items, 1, "el ID alucinado no sobrevive la revalidación")
	assert.Equal(t, "item-1", resp.Items[0].ItemID)
	assert.Equal(t, []string{"App móvil"}, resp.NoEncontrados)
}

func TestCotizar_CoercionaCantidadYPrecio(t *testing.T) {
	llm := &stubLLM{respuesta: &dto.AICotizarResponse{
		Items: []dto.AIItemPropuesto{
			{ItemID: "item-2", Cantidad: 0, PrecioUnitario: decimal.Zero},
		},
	}}
	uc := NewAIUseCase(llm, catalogoDePrueba())

	resp, err := uc.Cotizar(context.Background(), "user-1", "hosting")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Cantidad)
	assert.Equal(t, "50000", resp.Items[0].PrecioUnitario.String(), "precio en cero cae al precio base del catálogo")
	assert.Equal(t, "Hosting", resp.Items[0].Nombre)
}

func TestCotizar_MensajeVacio(t *testing.T) {
	uc := NewAIUseCase(&stubLLM{}, catalogoDePrueba())
	_, err := uc.Cotizar(context.Background(), "user-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCotizar_PropagaErrorDelModelo(t *testing.T) {
	uc := NewAIUseCase(&stubLLM{err: domain.ErrAIUnparsable}, catalogoDePrueba())
	_, err := uc.Cotizar(context.Background(), "user-1", "hola")
	assert.ErrorIs(t, err, domain.ErrAIUnparsable)
}

func TestEscribir(t *testing.T) {
	uc := NewAIUseCase(&stubLLM{}, catalogoDePrueba())

	out, err := uc.Escribir(context.Background(), "texto original", "notas")
	require.NoError(t, err)
	assert.Equal(t, "mejorado: texto original", out)

	_, err = uc.Escribir(context.Background(), "", "notas")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
