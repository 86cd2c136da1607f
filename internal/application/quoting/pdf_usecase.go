package quoting

import (
	"fmt"

	"github.com/brainware-dev/cotizador-api/internal/domain/document"
	"github.com/brainware-dev/cotizador-api/internal/domain/repository"
)

// PDFUseCase compone el documento de una cotización y lo renderiza a PDF.
type PDFUseCase struct {
	cotizaciones *CotizacionUseCase
	usuarioRepo  repository.UsuarioRepository
	generator    PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(cotizaciones *CotizacionUseCase, usuarioRepo repository.UsuarioRepository, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{cotizaciones: cotizaciones, usuarioRepo: usuarioRepo, generator: generator}
}

// Generar produce los bytes del PDF y el nombre de archivo sugerido
// (Cotizacion-<REF>.pdf). El emisor se resuelve del perfil vigente al
// momento del render; el resto del documento sale del snapshot guardado.
func (uc *PDFUseCase) Generar(usuarioID, cotizacionID string) (pdf []byte, filename string, err error) {
	c, err := uc.cotizaciones.cargarPropia(usuarioID, cotizacionID)
	if err != nil {
		return nil, "", err
	}

	emisor := document.Emisor{}
	if u, err := uc.usuarioRepo.GetByID(usuarioID); err == nil && u != nil {
		emisor = document.Emisor{
			Nombre:  u.NombreCompleto,
			Empresa: u.Empresa,
			Email:   u.Email,
			LogoURL: u.LogoURL,
		}
	}

	doc := document.Componer(c, emisor)
	pdf, err = uc.generator.Generar(doc)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("Cotizacion-%s.pdf", c.ShortRef()), nil
}

// Documento expone el documento compuesto con su paginación, sin
// renderizar. Lo usa la vista previa para reportar el total de páginas.
func (uc *PDFUseCase) Documento(usuarioID, cotizacionID string) (*document.Documento, []document.Pagina, error) {
	c, err := uc.cotizaciones.cargarPropia(usuarioID, cotizacionID)
	if err != nil {
		return nil, nil, err
	}
	emisor := document.Emisor{}
	if u, err := uc.usuarioRepo.GetByID(usuarioID); err == nil && u != nil {
		emisor = document.Emisor{
			Nombre:  u.NombreCompleto,
			Empresa: u.Empresa,
			Email:   u.Email,
			LogoURL: u.LogoURL,
		}
	}
	doc := document.Componer(c, emisor)
	return doc, document.PaginarA4(doc), nil
}
