package services

import (
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/list"
)

// VMArea es un área de memoria virtual. Start es el límite fijo, End el límite mapeado
// (siempre alineado a página) y Sbrk hasta dónde se entregó memoria. En sentido de
// crecimiento: Start <= Sbrk <= End.
type VMArea struct {
	ID        int
	Direction models.Direction
	Start     int
	End       int
	Sbrk      int

	freeRegions *list.ArrayList[models.Region]
}

func newVMArea(id int, direction models.Direction, start int) *VMArea {
	vma := &VMArea{
		ID:          id,
		Direction:   direction,
		Start:       start,
		End:         start,
		Sbrk:        start,
		freeRegions: list.NewArrayList[models.Region](models.MaxSymbols),
	}
	// región vacía inicial, nunca la elige el first-fit
	vma.freeRegions.Add(models.Region{Start: start, End: start, VMAID: id})
	return vma
}

// Empty indica si el área todavía no tiene páginas mapeadas.
func (vma *VMArea) Empty() bool { return vma.Start == vma.End }

func (vma *VMArea) FreeRegions() []models.Region { return vma.freeRegions.GetAll() }

// pages devuelve los números de página mapeados del área, en orden de crecimiento.
func (vma *VMArea) pages() []int {
	count := vma.Direction.Span(vma.Start, vma.End) / models.PageSize
	pgns := make([]int, 0, count)
	for i := 0; i < count; i++ {
		pgns = append(pgns, vma.pageAt(vma.Start, i))
	}
	return pgns
}

// pageAt es la i-ésima página a partir del límite boundary en el sentido del área.
func (vma *VMArea) pageAt(boundary int, i int) int {
	if vma.Direction == models.Down {
		return boundary/models.PageSize - 1 - i
	}
	return boundary/models.PageSize + i
}

// takeFreeRegion busca con first-fit una región libre de al menos size bytes y la recorta.
func (vma *VMArea) takeFreeRegion(size int) (models.Region, bool) {
	dir := vma.Direction
	free, index, found := vma.freeRegions.Find(func(rg models.Region) bool {
		return dir.Span(rg.Start, rg.End) >= size
	})
	if !found {
		return models.Region{}, false
	}

	region := models.Region{Start: free.Start, End: dir.Advance(free.Start, size), VMAID: vma.ID}
	if region.End == free.End {
		vma.freeRegions.Remove(index)
	} else {
		_ = vma.freeRegions.Set(index, models.Region{Start: region.End, End: free.End, VMAID: vma.ID})
	}
	return region, true
}

// validateOverlap chequea que el rango [lo, hi) que ocuparía vma no pise otra área con páginas.
func (proc *Process) validateOverlap(vma *VMArea, newEnd int) error {
	lo, hi := models.Extent(vma.Start, newEnd)
	for _, other := range proc.vmas {
		if other == vma || other.Empty() {
			continue
		}
		otherLo, otherHi := models.Extent(other.Start, other.End)
		if lo < otherHi && otherLo < hi {
			return fmt.Errorf("%w: área %d [%d, %d) contra área %d [%d, %d)",
				models.ErrOverlap, vma.ID, lo, hi, other.ID, otherLo, otherHi)
		}
	}
	return nil
}

// allocate reserva size bytes en el área vmaid y los registra en la entrada rgid.
func (m *Memory) allocate(proc *Process, vmaid int, rgid int, size int) (models.Region, error) {
	if rgid < 0 || rgid >= models.MaxSymbols {
		return models.Region{}, fmt.Errorf("%w: región %d fuera de la tabla", models.ErrInvalidRegion, rgid)
	}
	if size <= 0 {
		return models.Region{}, fmt.Errorf("%w: tamaño %d", models.ErrInvalidRegion, size)
	}
	if !proc.symbols[rgid].Empty() {
		return models.Region{}, fmt.Errorf("%w: región %d en uso", models.ErrInvalidRegion, rgid)
	}
	vma, err := proc.VMA(vmaid)
	if err != nil {
		return models.Region{}, err
	}

	region, found := vma.takeFreeRegion(size)
	if !found {
		region, err = m.growArea(proc, vma, size)
		if err != nil {
			return models.Region{}, err
		}
	}

	proc.symbols[rgid] = region
	slog.Info(fmt.Sprintf("## PID: %d - Reserva - Área: %d - Región: %d - Inicio: %d - Fin: %d",
		proc.PID, vma.ID, rgid, region.Start, region.End))
	return region, nil
}

// growArea amplía el área para entregar size bytes desde sbrk. Si algo falla el área queda como estaba.
func (m *Memory) growArea(proc *Process, vma *VMArea, size int) (models.Region, error) {
	dir := vma.Direction

	newSbrk := dir.Advance(vma.Sbrk, size)
	if newSbrk < 0 || newSbrk > proc.VMemSize {
		return models.Region{}, fmt.Errorf("%w: área %d no puede crecer %d bytes desde %d (límite %d)",
			models.ErrOutOfVirtualMemory, vma.ID, size, vma.Sbrk, proc.VMemSize)
	}

	newEnd := vma.End
	if dir.Span(vma.End, newSbrk) > 0 {
		newEnd = dir.AlignOut(newSbrk)
	}

	if newEnd != vma.End {
		if err := proc.validateOverlap(vma, newEnd); err != nil {
			return models.Region{}, err
		}
		if err := m.mapPages(proc, vma, newEnd); err != nil {
			return models.Region{}, err
		}
		vma.End = newEnd
	}

	region := models.Region{Start: vma.Sbrk, End: newSbrk, VMAID: vma.ID}
	vma.Sbrk = newSbrk
	return region, nil
}

// mapPages consigue un frame por cada página entre End y newEnd y las mapea.
func (m *Memory) mapPages(proc *Process, vma *VMArea, newEnd int) error {
	count := vma.Direction.Span(vma.End, newEnd) / models.PageSize

	frames := make([]int, 0, count)
	for i := 0; i < count; i++ {
		fpn, err := m.acquireFrame(proc)
		if err != nil {
			for _, acquired := range frames {
				m.ram.PutFreeFrame(acquired)
			}
			slog.Warn(fmt.Sprintf("## PID: %d - No se pudo crecer el área %d - Páginas: %d", proc.PID, vma.ID, count), "error", err)
			return err
		}
		frames = append(frames, fpn)
	}

	for i, fpn := range frames {
		pgn := vma.pageAt(vma.End, i)
		if err := m.zeroFrame(fpn); err != nil {
			return err
		}
		proc.pageTable[pgn] = models.InitPTE(true, fpn, false, false, 0, 0)
		m.policy.Track(proc, pgn, fpn)
		slog.Debug("Página mapeada", "pid", proc.PID, "pgn", pgn, "frame", fpn)
	}
	return nil
}

// free limpia la región rgid byte a byte y la devuelve a la lista de libres de su área.
func (m *Memory) free(proc *Process, rgid int) error {
	region, err := proc.Region(rgid)
	if err != nil {
		return err
	}
	if region.Empty() {
		return fmt.Errorf("%w: región %d ya está libre", models.ErrInvalidRegion, rgid)
	}
	vma, err := proc.VMA(region.VMAID)
	if err != nil {
		return err
	}

	span := vma.Direction.Span(region.Start, region.End)
	for i := 0; i < span; i++ {
		addr := vma.Direction.ByteAddr(region.Start, i)
		if _, err := m.accessByte(proc, vma, addr, true, 0); err != nil {
			return err
		}
	}

	proc.symbols[rgid] = models.Region{}
	vma.freeRegions.Prepend(region)

	slog.Info(fmt.Sprintf("## PID: %d - Liberación - Área: %d - Región: %d - Inicio: %d - Fin: %d",
		proc.PID, vma.ID, rgid, region.Start, region.End))
	return nil
}

// regionByte valida rgid y offset y devuelve la dirección virtual del byte.
func (proc *Process) regionByte(rgid int, offset int) (*VMArea, int, error) {
	region, err := proc.Region(rgid)
	if err != nil {
		return nil, 0, err
	}
	if region.Empty() {
		return nil, 0, fmt.Errorf("%w: región %d sin reservar", models.ErrInvalidRegion, rgid)
	}
	vma, err := proc.VMA(region.VMAID)
	if err != nil {
		return nil, 0, err
	}

	span := vma.Direction.Span(region.Start, region.End)
	if offset < 0 || offset >= span {
		return nil, 0, fmt.Errorf("%w: offset %d fuera de la región %d (%d bytes)", models.ErrInvalidRegion, offset, rgid, span)
	}
	return vma, vma.Direction.ByteAddr(region.Start, offset), nil
}

func (m *Memory) readRegion(proc *Process, rgid int, offset int) (byte, error) {
	vma, addr, err := proc.regionByte(rgid, offset)
	if err != nil {
		return 0, err
	}
	return m.accessByte(proc, vma, addr, false, 0)
}

func (m *Memory) writeRegion(proc *Process, rgid int, offset int, value byte) error {
	vma, addr, err := proc.regionByte(rgid, offset)
	if err != nil {
		return err
	}
	_, err = m.accessByte(proc, vma, addr, true, value)
	return err
}
