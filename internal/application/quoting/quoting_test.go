package quoting

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/domain"
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	"github.com/brainware-dev/cotizador-api/internal/domain/repository"
)

// ---- fakes en memoria ----

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func (r *fakeItemRepo) Create(item *entity.Item) error { r.items[item.ID] = item; return nil }
func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.items[id], nil
}
func (r *fakeItemRepo) ListByUsuario(usuarioID string) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.items {
		if it.UsuarioID == usuarioID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r *fakeItemRepo) Update(item *entity.Item) error { r.items[item.ID] = item; return nil }
func (r *fakeItemRepo) Delete(id string) error         { delete(r.items, id); return nil }

type fakeCotizacionRepo struct {
	cotizaciones map[string]*entity.Cotizacion
	updateErr    error
}

func (r *fakeCotizacionRepo) Create(c *entity.Cotizacion) error {
	copia := *c
	r.cotizaciones[c.ID] = &copia
	return nil
}
func (r *fakeCotizacionRepo) CreateLineas(cotizacionID string, lineas []entity.Linea) error {
	r.cotizaciones[cotizacionID].Lineas = lineas
	return nil
}
func (r *fakeCotizacionRepo) GetByID(id string) (*entity.Cotizacion, error) {
	return r.cotizaciones[id], nil
}
func (r *fakeCotizacionRepo) ListByUsuario(usuarioID string) ([]*entity.Cotizacion, error) {
	var out []*entity.Cotizacion
	for _, c := range r.cotizaciones {
		if c.UsuarioID == usuarioID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeCotizacionRepo) UpdateEstado(id, estado string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.cotizaciones[id].Estado = estado
	return nil
}
func (r *fakeCotizacionRepo) UpdateTipoDocumento(id, tipo, estado string) error {
	c := r.cotizaciones[id]
	c.TipoDocumento = tipo
	c.Estado = estado
	return nil
}

type fakeUsuarioRepo struct {
	usuarios map[string]*entity.Usuario
}

func (r *fakeUsuarioRepo) Create(u *entity.Usuario) error { r.usuarios[u.ID] = u; return nil }
func (r *fakeUsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	return r.usuarios[id], nil
}
func (r *fakeUsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUsuarioRepo) UpdatePerfil(u *entity.Usuario) error { r.usuarios[u.ID] = u; return nil }
func (r *fakeUsuarioRepo) UpdateLogoURL(id, logoURL string) error {
	r.usuarios[id].LogoURL = logoURL
	return nil
}

type fakeTx struct {
	repo *fakeCotizacionRepo
}

func (t fakeTx) Run(_ context.Context, fn func(repository.CotizacionRepository) error) error {
	return fn(t.repo)
}

type fakeMailer struct {
	ultimo Correo
	fallar error
}

func (m *fakeMailer) Enviar(_ context.Context, c Correo) (string, error) {
	if m.fallar != nil {
		return "", m.fallar
	}
	m.ultimo = c
	return "delivery-123", nil
}

// ---- armado de escenario ----

func armarEscenario(t *testing.T) (*CotizacionUseCase, *EstadoUseCase, *fakeItemRepo, *fakeCotizacionRepo, *fakeUsuarioRepo) {
	t.Helper()
	itemRepo := &fakeItemRepo{items: map[string]*entity.Item{}}
	cotRepo := &fakeCotizacionRepo{cotizaciones: map[string]*entity.Cotizacion{}}
	usuarioRepo := &fakeUsuarioRepo{usuarios: map[string]*entity.Usuario{}}
	cotizaciones := NewCotizacionUseCase(cotRepo, itemRepo, fakeTx{repo: cotRepo})
	estados := NewEstadoUseCase(cotizaciones)
	return cotizaciones, estados, itemRepo, cotRepo, usuarioRepo
}

func itemDePrueba(id, usuarioID string, precio int64, cat entity.Categoria) *entity.Item {
	return &entity.Item{
		ID:         id,
		UsuarioID:  usuarioID,
		Nombre:     "Servicio " + id,
		PrecioBase: decimal.NewFromInt(precio),
		Categoria:  cat,
	}
}

// ---- creación ----

func TestCreate_CongelaSnapshotYCalculaTotales(t *testing.T) {
	cotizaciones, _, itemRepo, cotRepo, _ := armarEscenario(t)
	itemRepo.items["item-1"] = itemDePrueba("item-1", "user-1", 50000, entity.CategoriaPagoUnico)

	resp, err := cotizaciones.Create(context.Background(), "user-1", &dto.CreateCotizacionRequest{
		ClienteNombre: "Acme SAS",
		TasaImpuesto:  decimal.NewFromInt(19),
		Lineas:        []dto.LineaRequest{{ItemID: "item-1", Cantidad: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, "150000", resp.Subtotal.String())
	assert.Equal(t, "28500", resp.Impuestos.String())
	assert.Equal(t, "178500", resp.Total.String())
	assert.Equal(t, entity.EstadoEnProceso, resp.Estado)
	assert.Equal(t, entity.TipoCotizacion, resp.TipoDocumento)

	// El snapshot queda congelado: editar el catálogo después no cambia la línea guardada.
	itemRepo.items["item-1"].PrecioBase = decimal.NewFromInt(99999)
	guardada := cotRepo.cotizaciones[resp.ID]
	assert.Equal(t, "50000", guardada.Lineas[0].PrecioUnitario.String())
}

func TestCreate_PersisteLaTasaClampada(t *testing.T) {
	cotizaciones, _, itemRepo, cotRepo, _ := armarEscenario(t)
	itemRepo.items["item-1"] = itemDePrueba("item-1", "user-1", 10000, entity.CategoriaPagoUnico)

	resp, err := cotizaciones.Create(context.Background(), "user-1", &dto.CreateCotizacionRequest{
		ClienteNombre: "Acme SAS",
		TasaImpuesto:  decimal.NewFromInt(-5),
		Lineas:        []dto.LineaRequest{{ItemID: "item-1", Cantidad: 1}},
	})
	require.NoError(t, err)

	// La tasa guardada es la aplicada (0), no la solicitada (-5): tasa e
	// impuestos persistidos deben ser coherentes entre sí.
	assert.True(t, resp.TasaImpuesto.IsZero(), "tasa en la respuesta: %s", resp.TasaImpuesto)
	assert.True(t, resp.Impuestos.IsZero())
	guardada := cotRepo.cotizaciones[resp.ID]
	assert.True(t, guardada.TasaImpuesto.IsZero(), "tasa persistida: %s", guardada.TasaImpuesto)
}

func TestCreate_PrecioNegociadoPorLinea(t *testing.T) {
	cotizaciones, _, itemRepo, _, _ := armarEscenario(t)
	itemRepo.items["item-1"] = itemDePrueba("item-1", "user-1", 50000, entity.CategoriaPagoUnico)

	resp, err := cotizaciones.Create(context.Background(), "user-1", &dto.CreateCotizacionRequest{
		ClienteNombre: "Acme SAS",
		Lineas:        []dto.LineaRequest{{ItemID: "item-1", Cantidad: 2, PrecioUnitario: decimal.NewFromInt(40000)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "80000", resp.Lineas[0].PrecioTotal.String())
	// El precio negociado no escribe al catálogo.
	assert.Equal(t, "50000", itemRepo.items["item-1"].PrecioBase.String())
}

func TestCreate_CostoAdicionalFueraDelSubtotal(t *testing.T) {
	cotizaciones, _, itemRepo, _, _ := armarEscenario(t)
	itemRepo.items["item-1"] = itemDePrueba("item-1", "user-1", 100000, entity.CategoriaPagoUnico)
	itemRepo.items["item-2"] = itemDePrueba("item-2", "user-1", 30000, entity.CategoriaCostoAdicional)

	resp, err := cotizaciones.Create(context.Background(), "user-1", &dto.CreateCotizacionRequest{
		ClienteNombre: "Acme SAS",
		Lineas: []dto.LineaRequest{
			{ItemID: "item-1", Cantidad: 1},
			{ItemID: "item-2", Cantidad: 1},
		},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Lineas, 2, "el costo adicional sí aparece como línea")
	assert.Equal(t, "100000", resp.Subtotal.String(), "pero no suma al subtotal")
}

func TestCreate_RechazaSolicitudIncompleta(t *testing.T) {
	cotizaciones, _, itemRepo, _, _ := armarEscenario(t)
	itemRepo.items["item-1"] = itemDePrueba("item-1", "user-1", 50000, entity.CategoriaPagoUnico)

	_, err := cotizaciones.Create(context.Background(), "user-1", &dto.CreateCotizacionRequest{
		ClienteNombre: "   ",
		Lineas:        []dto.LineaRequest{{ItemID: "item-1", Cantidad: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = cotizaciones.Create(context.Background(), "user-1", &dto.CreateCotizacionRequest{
		ClienteNombre: "Acme SAS",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_RechazaItemDeOtroUsuario(t *testing.T) {
	cotizaciones, _, itemRepo, _, _ := armarEscenario(t)
	itemRepo.items["ajeno"] = itemDePrueba("ajeno", "user-2", 50000, entity.CategoriaPagoUnico)

	_, err := cotizaciones.Create(context.Background(), "user-1", &dto.CreateCotizacionRequest{
		ClienteNombre: "Acme SAS",
		Lineas:        []dto.LineaRequest{{ItemID: "ajeno", Cantidad: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ---- estados ----

func crearCotizacionDePrueba(t *testing.T, cotizaciones *CotizacionUseCase, itemRepo *fakeItemRepo) string {
	t.Helper()
	itemRepo.items["item-1"] = itemDePrueba("item-1", "user-1", 50000, entity.CategoriaPagoUnico)
	resp, err := cotizaciones.Create(context.Background(), "user-1", &dto.CreateCotizacionRequest{
		ClienteNombre: "Acme SAS",
		Lineas:        []dto.LineaRequest{{ItemID: "item-1", Cantidad: 1}},
	})
	require.NoError(t, err)
	return resp.ID
}

func TestCambiarEstado_MovimientoManualLibre(t *testing.T) {
	cotizaciones, estados, itemRepo, _, _ := armarEscenario(t)
	id := crearCotizacionDePrueba(t, cotizaciones, itemRepo)

	resp, err := estados.CambiarEstado("user-1", id, entity.EstadoGanado)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoGanado, resp.Estado)

	// El tablero permite retroceder manualmente.
	resp, err = estados.CambiarEstado("user-1", id, entity.EstadoEnProceso)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoEnProceso, resp.Estado)
}

func TestCambiarEstado_RechazaEstadoDesconocido(t *testing.T) {
	cotizaciones, estados, itemRepo, _, _ := armarEscenario(t)
	id := crearCotizacionDePrueba(t, cotizaciones, itemRepo)

	_, err := estados.CambiarEstado("user-1", id, "Archivado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCambiarEstado_ExigePropiedad(t *testing.T) {
	cotizaciones, estados, itemRepo, _, _ := armarEscenario(t)
	id := crearCotizacionDePrueba(t, cotizaciones, itemRepo)

	_, err := estados.CambiarEstado("intruso", id, entity.EstadoGanado)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = estados.CambiarEstado("user-1", "no-existe", entity.EstadoGanado)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConvertir_FuerzaAprobado(t *testing.T) {
	cotizaciones, estados, itemRepo, cotRepo, _ := armarEscenario(t)
	id := crearCotizacionDePrueba(t, cotizaciones, itemRepo)

	resp, err := estados.Convertir("user-1", id, entity.TipoCuentaCobro)
	require.NoError(t, err)
	assert.Equal(t, entity.TipoCuentaCobro, resp.TipoDocumento)
	assert.Equal(t, entity.EstadoAprobado, resp.Estado)
	assert.Equal(t, entity.EstadoAprobado, cotRepo.cotizaciones[id].Estado)
}

func TestConvertir_RechazaVolverACotizacion(t *testing.T) {
	cotizaciones, estados, itemRepo, _, _ := armarEscenario(t)
	id := crearCotizacionDePrueba(t, cotizaciones, itemRepo)

	_, err := estados.Convertir("user-1", id, entity.TipoCotizacion)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = estados.Convertir("user-1", id, "recibo")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarApertura_AvanzaSoloDesdeEnviado(t *testing.T) {
	casos := []struct {
		inicial      string
		quiereCambio bool
		final        string
	}{
		{entity.EstadoEnviado, true, entity.EstadoTramitando},
		{entity.EstadoTramitando, false, entity.EstadoTramitando},
		{entity.EstadoEnProceso, false, entity.EstadoEnProceso},
		{entity.EstadoPagado, false, entity.EstadoPagado},
		{entity.EstadoGanado, false, entity.EstadoGanado},
		{entity.EstadoPerdido, false, entity.EstadoPerdido},
	}
	for _, c := range casos {
		t.Run(c.inicial, func(t *testing.T) {
			cotizaciones, estados, itemRepo, cotRepo, _ := armarEscenario(t)
			id := crearCotizacionDePrueba(t, cotizaciones, itemRepo)
			cotRepo.cotizaciones[id].Estado = c.inicial

			cambio, err := estados.RegistrarApertura(id)
			require.NoError(t, err)
			assert.Equal(t, c.quiereCambio, cambio)
			assert.Equal(t, c.final, cotRepo.cotizaciones[id].Estado)
		})
	}
}

func TestRegistrarApertura_IDDesconocidoNoEsError(t *testing.T) {
	_, estados, _, _, _ := armarEscenario(t)
	cambio, err := estados.RegistrarApertura("no-existe")
	require.NoError(t, err)
	assert.False(t, cambio)
}

// ---- envío ----

func TestEnviar_EtiquetaYPasoAEnviado(t *testing.T) {
	cotizaciones, _, itemRepo, cotRepo, usuarioRepo := armarEscenario(t)
	id := crearCotizacionDePrueba(t, cotizaciones, itemRepo)
	cotRepo.cotizaciones[id].ClienteEmail = "cliente@acme.co"
	usuarioRepo.usuarios["user-1"] = &entity.Usuario{ID: "user-1", NombreCompleto: "Laura", Empresa: "Brainware"}

	mailer := &fakeMailer{}
	enviar := NewEnviarUseCase(cotizaciones, usuarioRepo, mailer)

	resp, err := enviar.Enviar(context.Background(), "user-1", id, &dto.EnviarRequest{
		URL: "https://app.example.com/c/" + id,
	})
	require.NoError(t, err)
	assert.Equal(t, "delivery-123", resp.DeliveryID)

	assert.Equal(t, "cliente@acme.co", mailer.ultimo.Para, "sin destinatario explícito usa el email del cliente")
	assert.Equal(t, asuntoPorDefecto, mailer.ultimo.Asunto)
	assert.Equal(t, id, mailer.ultimo.Etiquetas["cotizacion_id"], "la etiqueta correlaciona el webhook de apertura")
	assert.Contains(t, mailer.ultimo.HTML, "Acme SAS")
	assert.Equal(t, entity.EstadoEnviado, cotRepo.cotizaciones[id].Estado)
}

func TestEnviar_SinDestinatarioNiURL(t *testing.T) {
	cotizaciones, _, itemRepo, _, usuarioRepo := armarEscenario(t)
	id := crearCotizacionDePrueba(t, cotizaciones, itemRepo)
	enviar := NewEnviarUseCase(cotizaciones, usuarioRepo, &fakeMailer{})

	_, err := enviar.Enviar(context.Background(), "user-1", id, &dto.EnviarRequest{URL: "https://x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin email del cliente ni destinatario explícito")

	_, err = enviar.Enviar(context.Background(), "user-1", id, &dto.EnviarRequest{Para: "a@b.co"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin URL del documento")
}

func TestEnviar_FalloDelProveedorNoTocaElEstado(t *testing.T) {
	cotizaciones, _, itemRepo, cotRepo, usuarioRepo := armarEscenario(t)
	id := crearCotizacionDePrueba(t, cotizaciones, itemRepo)

	mailer := &fakeMailer{fallar: errors.New("proveedor caído")}
	enviar := NewEnviarUseCase(cotizaciones, usuarioRepo, mailer)

	_, err := enviar.Enviar(context.Background(), "user-1", id, &dto.EnviarRequest{
		Para: "cliente@acme.co", URL: "https://x",
	})
	require.Error(t, err)
	assert.Equal(t, entity.EstadoEnProceso, cotRepo.cotizaciones[id].Estado)
}
