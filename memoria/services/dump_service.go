package services

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/helpers"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
)

// DumpProcess arma la foto de un proceso: tabla de páginas, símbolos, áreas, cola de reemplazo y estado de la RAM.
func (m *Memory) DumpProcess(pid int) (models.ProcessDump, error) {
	var dump models.ProcessDump
	err := m.withProcess(pid, func(proc *Process) error {
		dump = m.buildDump(proc)
		return nil
	})
	return dump, err
}

func (m *Memory) buildDump(proc *Process) models.ProcessDump {
	dump := models.ProcessDump{
		PID:              proc.PID,
		VMemSize:         proc.VMemSize,
		Replacement:      m.policy.Name(),
		ReplacementQueue: m.policy.Snapshot(proc),
		ActiveSwap:       proc.swap.Active(),
		RamFreeFrames:    m.ram.FreeFrameCount(),
		RamMappedFrames:  m.ram.FrameCount() - m.ram.FreeFrameCount(),
	}

	for _, vma := range proc.vmas {
		dump.VMAs = append(dump.VMAs, models.VMAInfo{
			ID:          vma.ID,
			Direction:   vma.Direction.String(),
			Start:       vma.Start,
			End:         vma.End,
			Sbrk:        vma.Sbrk,
			FreeRegions: vma.FreeRegions(),
		})
		for _, pgn := range vma.pages() {
			pte := proc.pageTable[pgn]
			dump.PageTable = append(dump.PageTable, models.PageTableRow{
				PGN:      pgn,
				PTE:      uint32(pte),
				Dirty:    pte.Dirty(),
				Location: pte.Location(),
			})
		}
	}

	for id, region := range proc.symbols {
		if !region.Empty() {
			dump.Symbols = append(dump.Symbols, models.SymbolRow{ID: id, Region: region})
		}
	}
	return dump
}

// FormatDump pasa el dump a texto para el archivo .dmp.
func FormatDump(dump models.ProcessDump, ramCells string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "PID: %d - Tamaño virtual: %d\n", dump.PID, dump.VMemSize)

	sb.WriteString("\n== Tabla de páginas ==\n")
	for _, row := range dump.PageTable {
		switch row.Location.Kind {
		case models.Resident:
			fmt.Fprintf(&sb, "Página: %d -> Frame: %d (PTE %08x, dirty %t)\n", row.PGN, row.Location.Frame, row.PTE, row.Dirty)
		case models.Swapped:
			fmt.Fprintf(&sb, "Página: %d -> Swap: %d Offset: %d (PTE %08x, dirty %t)\n", row.PGN, row.Location.Device, row.Location.Offset, row.PTE, row.Dirty)
		default:
			fmt.Fprintf(&sb, "Página: %d -> no mapeada\n", row.PGN)
		}
	}

	sb.WriteString("\n== Regiones ==\n")
	for _, symbol := range dump.Symbols {
		fmt.Fprintf(&sb, "Región: %d - Área: %d - [%d, %d)\n", symbol.ID, symbol.Region.VMAID, symbol.Region.Start, symbol.Region.End)
	}

	sb.WriteString("\n== Áreas ==\n")
	for _, vma := range dump.VMAs {
		fmt.Fprintf(&sb, "Área: %d (%s) - Inicio: %d - Fin: %d - Sbrk: %d\n", vma.ID, vma.Direction, vma.Start, vma.End, vma.Sbrk)
		for _, free := range vma.FreeRegions {
			fmt.Fprintf(&sb, "    libre [%d, %d)\n", free.Start, free.End)
		}
	}

	fmt.Fprintf(&sb, "\n== Reemplazo %s ==\n%v\n", dump.Replacement, dump.ReplacementQueue)
	fmt.Fprintf(&sb, "\nSwap activo: %d\n", dump.ActiveSwap)
	fmt.Fprintf(&sb, "RAM: %d frames mapeados - %d libres\n", dump.RamMappedFrames, dump.RamFreeFrames)

	if ramCells != "" {
		sb.WriteString("\n== RAM ==\n")
		sb.WriteString(ramCells)
	}
	return sb.String()
}

// ExecuteDumpMemory escribe el dump del proceso en <dump_path>/<pid>-<timestamp>.dmp y devuelve la ruta.
func (m *Memory) ExecuteDumpMemory(pid int) (string, models.ProcessDump, error) {
	slog.Info(fmt.Sprintf("## PID: %d - Memory Dump solicitado", pid))

	var dump models.ProcessDump
	var ramCells string
	err := m.withProcess(pid, func(proc *Process) error {
		dump = m.buildDump(proc)
		ramCells = m.ram.Dump()
		return nil
	})
	if err != nil {
		return "", dump, err
	}

	dumpFilePath := filepath.Join(m.config.DumpPath, helpers.GetDumpName(pid))
	if err := os.WriteFile(dumpFilePath, []byte(FormatDump(dump, ramCells)), 0644); err != nil {
		slog.Error(fmt.Sprintf("error al crear archivo de dump: %v", err))
		return "", dump, err
	}

	slog.Debug("Dump generado", "pid", pid, "archivo", dumpFilePath)
	return dumpFilePath, dump, nil
}
