package ports

import "context"

// BlobStorage puerto de almacenamiento de imágenes (logos y firmas).
// Devuelve la URL pública del objeto subido.
type BlobStorage interface {
	SubirImagen(ctx context.Context, usuarioID, nombreArchivo, contentType string, contenido []byte) (string, error)
}
