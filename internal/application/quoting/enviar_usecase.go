package quoting

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/domain"
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	"github.com/brainware-dev/cotizador-api/internal/domain/repository"
	"github.com/brainware-dev/cotizador-api/pkg/money"
)

const asuntoPorDefecto = "Nueva Cotización"

// EnviarUseCase envío de la cotización al cliente por correo.
type EnviarUseCase struct {
	cotizaciones *CotizacionUseCase
	usuarioRepo  repository.UsuarioRepository
	mailer       Mailer
}

// NewEnviarUseCase construye el caso de uso.
func NewEnviarUseCase(cotizaciones *CotizacionUseCase, usuarioRepo repository.UsuarioRepository, mailer Mailer) *EnviarUseCase {
	return &EnviarUseCase{cotizaciones: cotizaciones, usuarioRepo: usuarioRepo, mailer: mailer}
}

// Enviar manda el correo con el enlace al documento y, si el proveedor lo
// acepta, marca la cotización como Enviada. El ID de la cotización viaja
// como etiqueta del correo; el webhook de apertura lo devuelve y con él se
// avanza a Tramitando. Si el envío falla el estado no se toca.
func (uc *EnviarUseCase) Enviar(ctx context.Context, usuarioID, cotizacionID string, req *dto.EnviarRequest) (*dto.EnviarResponse, error) {
	c, err := uc.cotizaciones.cargarPropia(usuarioID, cotizacionID)
	if err != nil {
		return nil, err
	}

	para := strings.TrimSpace(req.Para)
	if para == "" {
		para = c.ClienteEmail
	}
	if para == "" || strings.TrimSpace(req.URL) == "" {
		return nil, domain.ErrInvalidInput
	}
	asunto := strings.TrimSpace(req.Asunto)
	if asunto == "" {
		asunto = asuntoPorDefecto
	}

	emisorNombre := ""
	if u, err := uc.usuarioRepo.GetByID(usuarioID); err == nil && u != nil {
		emisorNombre = u.NombreCompleto
		if u.Empresa != "" {
			emisorNombre = u.Empresa
		}
	}

	correo := Correo{
		Para:   para,
		Asunto: asunto,
		HTML:   cuerpoCorreo(c, emisorNombre, req.URL),
		Etiquetas: map[string]string{
			"cotizacion_id": c.ID,
		},
	}
	deliveryID, err := uc.mailer.Enviar(ctx, correo)
	if err != nil {
		return nil, err
	}

	if err := uc.cotizaciones.cotizacionRepo.UpdateEstado(c.ID, entity.EstadoEnviado); err != nil {
		// El correo ya salió; el error de persistencia se propaga para que
		// el usuario sepa que el tablero quedó desfasado.
		return nil, err
	}
	return &dto.EnviarResponse{DeliveryID: deliveryID}, nil
}

// cuerpoCorreo arma el HTML del correo: saludo, total y botón al documento.
func cuerpoCorreo(c *entity.Cotizacion, emisorNombre, url string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:24px">`)
	fmt.Fprintf(&b, `<h2 style="color:#111">Hola %s,</h2>`, html.EscapeString(c.ClienteNombre))
	if emisorNombre != "" {
		fmt.Fprintf(&b, `<p>%s te ha enviado una cotización.</p>`, html.EscapeString(emisorNombre))
	} else {
		b.WriteString(`<p>Te han enviado una cotización.</p>`)
	}
	fmt.Fprintf(&b, `<p>Referencia: <strong>%s</strong><br/>Valor total: <strong>%s</strong></p>`,
		html.EscapeString(c.ShortRef()), money.FormatearCOP(c.Total))
	fmt.Fprintf(&b, `<p style="margin:32px 0"><a href="%s" style="background:#111;color:#fff;padding:12px 24px;text-decoration:none;border-radius:6px">Ver cotización</a></p>`,
		html.EscapeString(url))
	b.WriteString(`<p style="color:#666;font-size:12px">Si el botón no funciona, copia y pega este enlace en tu navegador:<br/>`)
	b.WriteString(html.EscapeString(url))
	b.WriteString(`</p></div>`)
	return b.String()
}
