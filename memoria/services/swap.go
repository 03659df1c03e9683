package services

import (
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
)

// SwapManager maneja los dispositivos de swap privados de un proceso y cuál está activo.
type SwapManager struct {
	devices []*PhysicalMemory
	active  int
}

// NewSwapManager crea un dispositivo por cada tamaño. El activo arranca siendo el 0.
func NewSwapManager(sizes []int, sequential bool) (*SwapManager, error) {
	if len(sizes) == 0 || len(sizes) > models.MaxSwapDevices {
		return nil, fmt.Errorf("%w: se esperaban entre 1 y %d dispositivos de swap", models.ErrInvalidConfig, models.MaxSwapDevices)
	}
	devices := make([]*PhysicalMemory, 0, len(sizes))
	for _, size := range sizes {
		dev, err := NewPhysicalMemory(size, sequential)
		if err != nil {
			return nil, err
		}
		devices = append(devices, dev)
	}
	return &SwapManager{devices: devices}, nil
}

func (sm *SwapManager) Count() int { return len(sm.devices) }

func (sm *SwapManager) Active() int { return sm.active }

func (sm *SwapManager) Device(index int) (*PhysicalMemory, error) {
	if index < 0 || index >= len(sm.devices) {
		return nil, fmt.Errorf("%w: dispositivo de swap %d inexistente", models.ErrInvalidAddress, index)
	}
	return sm.devices[index], nil
}

// Reserve pide un frame libre al dispositivo activo. Si no tiene, recorre los demás en orden
// y el primero con lugar pasa a ser el activo. Sin lugar en ninguno devuelve ErrOutOfSwap.
func (sm *SwapManager) Reserve() (device int, offset int, err error) {
	if slot, err := sm.devices[sm.active].GetFreeFrame(); err == nil {
		return sm.active, slot, nil
	}

	for i, dev := range sm.devices {
		if i == sm.active {
			continue
		}
		slot, err := dev.GetFreeFrame()
		if err != nil {
			continue
		}
		slog.Debug("Cambio de swap activo", "anterior", sm.active, "nuevo", i)
		sm.active = i
		return i, slot, nil
	}

	return -1, -1, models.ErrOutOfSwap
}

// Release devuelve un frame de swap a su dispositivo.
func (sm *SwapManager) Release(device int, offset int) error {
	dev, err := sm.Device(device)
	if err != nil {
		return err
	}
	dev.PutFreeFrame(offset)
	return nil
}
