package quote

import "github.com/brainware-dev/cotizador-api/internal/domain/entity"

// AplicarApertura resuelve el estado resultante cuando llega la señal
// "el cliente abrió el correo" (webhook del proveedor de envío).
//
// Es una transición monótona: solo asciende Enviado → Tramitando y es
// idempotente si ya está en Tramitando. Jamás regresa un estado de pago o
// terminal (Pagado, Aprobado, Ganado, Perdido) ni toca una cotización que
// todavía está En proceso. Devuelve el nuevo estado y si hubo cambio real,
// para que el caller persista solo cuando haga falta.
func AplicarApertura(actual string) (nuevo string, cambio bool) {
	switch actual {
	case entity.EstadoEnviado:
		return entity.EstadoTramitando, true
	case entity.EstadoTramitando:
		return entity.EstadoTramitando, false
	default:
		return actual, false
	}
}

// CambioManualValido reporta si un cambio de estado pedido por el usuario
// es aceptable. El tablero es kanban, no un workflow de aprobación: el
// dueño puede mover la cotización libremente entre estados conocidos; la
// única validación es que el destino exista.
func CambioManualValido(nuevo string) bool {
	return entity.EstadoValido(nuevo)
}

// EstadoTrasConversion devuelve el estado que fuerza la conversión de
// documento: convertir a cuenta de cobro o factura proforma implica que
// el cliente aceptó, así que el estado pasa a Aprobado sin atravesar
// Enviado/Tramitando.
func EstadoTrasConversion() string {
	return entity.EstadoAprobado
}
