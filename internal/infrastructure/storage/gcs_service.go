package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gcstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/brainware-dev/cotizador-api/internal/application/ports"
	"github.com/brainware-dev/cotizador-api/internal/domain"
)

// Verificar en tiempo de compilación que GCSService implementa BlobStorage.
var _ ports.BlobStorage = (*GCSService)(nil)

// MaxImagenBytes tope de tamaño para imágenes subidas (logos y firmas).
const MaxImagenBytes = 5 << 20 // 5 MB

// GCSService adaptador del puerto BlobStorage sobre Google Cloud Storage.
// Los objetos quedan bajo <usuario_id>/<timestamp>-<archivo> y se exponen
// por la URL pública estándar del bucket.
type GCSService struct {
	client *gcstorage.Client
	bucket string
}

// NewGCSService construye el cliente. credentialsPath puede ser vacío: en
// ese caso se usan las credenciales por defecto del entorno (ADC).
func NewGCSService(ctx context.Context, bucket, credentialsPath string) (*GCSService, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}
	client, err := gcstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSService{client: client, bucket: bucket}, nil
}

// SubirImagen valida tipo y tamaño, sube el objeto y devuelve su URL pública.
func (s *GCSService) SubirImagen(ctx context.Context, usuarioID, nombreArchivo, contentType string, contenido []byte) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: solo se aceptan imágenes", domain.ErrInvalidInput)
	}
	if len(contenido) == 0 || len(contenido) > MaxImagenBytes {
		return "", fmt.Errorf("%w: la imagen debe pesar entre 1 byte y %d MB", domain.ErrInvalidInput, MaxImagenBytes>>20)
	}

	objectName := fmt.Sprintf("%s/%d%s", usuarioID, time.Now().UnixNano(), filepath.Ext(nombreArchivo))

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(contenido); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("storage: escribir objeto: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("storage: cerrar writer: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName), nil
}

// Close libera el cliente subyacente.
func (s *GCSService) Close() error {
	return s.client.Close()
}
