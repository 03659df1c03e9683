package services

import (
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
)

// withProcess busca el proceso y ejecuta fn con faultMu tomado.
func (m *Memory) withProcess(pid int, fn func(proc *Process) error) error {
	proc, err := m.GetProcess(pid)
	if err != nil {
		return err
	}

	m.faultMu.Lock()
	defer m.faultMu.Unlock()

	// pudo haberse liberado mientras esperábamos el lock
	current, err := m.GetProcess(pid)
	if err != nil {
		return err
	}
	if current != proc {
		return fmt.Errorf("%w: PID %d fue reemplazado", models.ErrProcessNotFound, pid)
	}
	return fn(proc)
}

// Alloc reserva size bytes en el área de datos para la región reg y devuelve la dirección de su primer byte.
func (m *Memory) Alloc(pid int, size int, reg int) (int, error) {
	return m.reserve(pid, DataVMA, size, reg)
}

// Malloc es como Alloc pero sobre el heap.
func (m *Memory) Malloc(pid int, size int, reg int) (int, error) {
	return m.reserve(pid, HeapVMA, size, reg)
}

func (m *Memory) reserve(pid int, vmaid int, size int, reg int) (int, error) {
	var address int
	err := m.withProcess(pid, func(proc *Process) error {
		region, err := m.allocate(proc, vmaid, reg, size)
		if err != nil {
			return err
		}
		address = proc.vmas[vmaid].Direction.ByteAddr(region.Start, 0)
		return nil
	})
	if err != nil {
		slog.Error(fmt.Sprintf("## PID: %d - Reserva fallida - Área: %d - Región: %d - Tamaño: %d", pid, vmaid, reg, size), "error", err)
		return 0, err
	}
	return address, nil
}

func (m *Memory) Free(pid int, reg int) error {
	err := m.withProcess(pid, func(proc *Process) error {
		return m.free(proc, reg)
	})
	if err != nil {
		slog.Error(fmt.Sprintf("## PID: %d - Liberación fallida - Región: %d", pid, reg), "error", err)
	}
	return err
}

// Read lee el byte offset de la región reg.
func (m *Memory) Read(pid int, reg int, offset int) (byte, error) {
	var value byte
	err := m.withProcess(pid, func(proc *Process) error {
		var err error
		value, err = m.readRegion(proc, reg, offset)
		return err
	})
	if err != nil {
		slog.Error(fmt.Sprintf("## PID: %d - Lectura fallida - Región: %d - Offset: %d", pid, reg, offset), "error", err)
		return 0, err
	}

	slog.Info(fmt.Sprintf("## PID: %d - Lectura - Región: %d - Offset: %d - Valor: %d", pid, reg, offset, value))
	return value, nil
}

// Write escribe data en el byte offset de la región reg.
func (m *Memory) Write(pid int, data byte, reg int, offset int) error {
	err := m.withProcess(pid, func(proc *Process) error {
		return m.writeRegion(proc, reg, offset, data)
	})
	if err != nil {
		slog.Error(fmt.Sprintf("## PID: %d - Escritura fallida - Región: %d - Offset: %d", pid, reg, offset), "error", err)
		return err
	}

	slog.Info(fmt.Sprintf("## PID: %d - Escritura - Región: %d - Offset: %d - Valor: %d", pid, reg, offset, data))
	return nil
}
