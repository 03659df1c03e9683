package services

import (
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/list"
)

const (
	DataVMA = 0 // área de datos, ALLOC
	HeapVMA = 1 // heap, MALLOC
)

// Process es el contexto de memoria de un proceso: tabla de páginas, áreas virtuales,
// tabla de símbolos, cola FIFO y sus dispositivos de swap.
type Process struct {
	PID      int
	VMemSize int

	pageTable []models.PTE
	vmas      [2]*VMArea
	symbols   [models.MaxSymbols]models.Region
	fifo      *list.ArrayList[int]
	swap      *SwapManager
}

func newProcess(pid int, vmemsz int, heapGrowsUp bool, swap *SwapManager) *Process {
	heapDirection, heapStart := models.Down, vmemsz
	if heapGrowsUp {
		heapDirection, heapStart = models.Up, (vmemsz/2)&^(models.PageSize-1)
	}

	return &Process{
		PID:       pid,
		VMemSize:  vmemsz,
		pageTable: make([]models.PTE, vmemsz/models.PageSize),
		vmas: [2]*VMArea{
			newVMArea(DataVMA, models.Up, 0),
			newVMArea(HeapVMA, heapDirection, heapStart),
		},
		fifo: list.NewArrayList[int](vmemsz / models.PageSize),
		swap: swap,
	}
}

// Region devuelve la entrada rgid de la tabla de símbolos.
func (p *Process) Region(rgid int) (models.Region, error) {
	if rgid < 0 || rgid >= models.MaxSymbols {
		return models.Region{}, models.ErrInvalidRegion
	}
	return p.symbols[rgid], nil
}

func (p *Process) VMA(vmaid int) (*VMArea, error) {
	if vmaid < 0 || vmaid >= len(p.vmas) {
		return nil, models.ErrInvalidRegion
	}
	return p.vmas[vmaid], nil
}

// PTE devuelve la entrada de la página pgn (vacía si está fuera de la tabla).
func (p *Process) PTE(pgn int) models.PTE {
	if pgn < 0 || pgn >= len(p.pageTable) {
		return 0
	}
	return p.pageTable[pgn]
}

func (p *Process) Swap() *SwapManager { return p.swap }
