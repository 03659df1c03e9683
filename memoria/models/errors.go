package models

import "errors"

var (
	ErrInvalidRegion      = errors.New("invalid region")
	ErrOverlap            = errors.New("vm area overlap")
	ErrOutOfVirtualMemory = errors.New("out of virtual memory")
	ErrOutOfSwap          = errors.New("out of swap")
	ErrNoFreeFrame        = errors.New("no free frame")
	ErrNoVictim           = errors.New("no victim page")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrProcessNotFound    = errors.New("process not found")
	ErrProcessExists      = errors.New("process already exists")
	ErrInvalidConfig      = errors.New("invalid config")
)

// Códigos que devuelven las operaciones de memoria a la CPU
const (
	StatusOK        = 0
	StatusFailure   = 1
	StatusOutOfSwap = -3000
)

// StatusFromError traduce el resultado de una operación al código que espera la CPU.
// OutOfSwap conserva su propio código, cualquier otro error es un fallo genérico.
func StatusFromError(err error) int {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrOutOfSwap):
		return StatusOutOfSwap
	default:
		return StatusFailure
	}
}
