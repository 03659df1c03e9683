package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
)

// Todo lo de este archivo asume que faultMu está tomado.

// acquireFrame consigue un frame de RAM: uno libre si hay, si no desaloja una víctima.
func (m *Memory) acquireFrame(requester *Process) (int, error) {
	fpn, err := m.ram.GetFreeFrame()
	if err == nil {
		return fpn, nil
	}
	if !errors.Is(err, models.ErrNoFreeFrame) {
		return -1, err
	}
	return m.evict(requester)
}

// evict manda la víctima de la política al swap activo de su dueño y devuelve el frame que quedó libre.
// Si no hay swap la víctima queda residente y no se toca nada.
func (m *Memory) evict(requester *Process) (int, error) {
	victim, err := m.policy.Victim(requester)
	if err != nil {
		return -1, err
	}
	owner := victim.Owner

	device, slot, err := owner.swap.Reserve()
	if err != nil {
		slog.Warn(fmt.Sprintf("## PID: %d - Sin swap para desalojar - Página: %d - Frame: %d", owner.PID, victim.PGN, victim.FPN))
		return -1, err
	}

	swapDevice, err := owner.swap.Device(device)
	if err != nil {
		return -1, err
	}
	if err := CopyPage(m.ram, victim.FPN, swapDevice, slot); err != nil {
		_ = owner.swap.Release(device, slot)
		return -1, err
	}

	owner.pageTable[victim.PGN].SetSwap(device, slot)
	m.policy.Remove(victim)

	slog.Info(fmt.Sprintf("## PID: %d - Swap Out - Página: %d - Frame: %d - Swap: %d - Offset: %d",
		owner.PID, victim.PGN, victim.FPN, device, slot))
	return victim.FPN, nil
}

// zeroFrame limpia un frame de RAM antes de entregarlo a una página nueva.
func (m *Memory) zeroFrame(fpn int) error {
	base := fpn * models.PageSize
	for i := 0; i < models.PageSize; i++ {
		if err := m.ram.Write(base+i, 0); err != nil {
			return err
		}
	}
	return nil
}

// getPage resuelve una página a un frame de RAM, trayéndola de swap si hace falta.
func (m *Memory) getPage(proc *Process, pgn int) (int, error) {
	if pgn < 0 || pgn >= len(proc.pageTable) {
		return -1, fmt.Errorf("%w: página %d fuera del espacio virtual", models.ErrInvalidAddress, pgn)
	}

	loc := proc.pageTable[pgn].Location()
	switch loc.Kind {
	case models.Resident:
		return loc.Frame, nil

	case models.Swapped:
		fpn, err := m.acquireFrame(proc)
		if err != nil {
			return -1, err
		}

		swapDevice, err := proc.swap.Device(loc.Device)
		if err != nil {
			m.ram.PutFreeFrame(fpn)
			return -1, err
		}
		if err := CopyPage(swapDevice, loc.Offset, m.ram, fpn); err != nil {
			m.ram.PutFreeFrame(fpn)
			return -1, err
		}
		if err := proc.swap.Release(loc.Device, loc.Offset); err != nil {
			return -1, err
		}

		proc.pageTable[pgn].SetFPN(fpn)
		m.policy.Track(proc, pgn, fpn)

		slog.Info(fmt.Sprintf("## PID: %d - Swap In - Página: %d - Frame: %d - Swap: %d - Offset: %d",
			proc.PID, pgn, fpn, loc.Device, loc.Offset))
		return fpn, nil

	default:
		return -1, fmt.Errorf("%w: página %d no mapeada", models.ErrInvalidAddress, pgn)
	}
}

// accessByte lee (o escribe si write es true) el byte de la dirección virtual addr del área vma.
func (m *Memory) accessByte(proc *Process, vma *VMArea, addr int, write bool, value byte) (byte, error) {
	pgn, offset := models.DecodeAddress(addr)

	fpn, err := m.getPage(proc, pgn)
	if err != nil {
		return 0, err
	}
	physAddr := models.PhysicalAddress(fpn, offset, vma.Direction)

	if write {
		if err := m.ram.Write(physAddr, value); err != nil {
			return 0, err
		}
		proc.pageTable[pgn].SetDirty(true)
	} else {
		value, err = m.ram.Read(physAddr)
		if err != nil {
			return 0, err
		}
	}

	m.policy.Touch(proc, pgn, fpn)
	return value, nil
}
