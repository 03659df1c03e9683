package models

// Direction es el sentido en que crece un área de memoria virtual.
type Direction int

const (
	Up   Direction = 1
	Down Direction = -1
)

func (d Direction) String() string {
	if d == Down {
		return "DOWN"
	}
	return "UP"
}

// Advance mueve un límite n bytes en el sentido de crecimiento.
func (d Direction) Advance(boundary int, n int) int {
	return boundary + int(d)*n
}

// Span es la cantidad de bytes entre dos límites medida en el sentido de crecimiento.
func (d Direction) Span(from int, to int) int {
	return int(d) * (to - from)
}

// ByteAddr es la dirección del i-ésimo byte de una región que arranca en el límite boundary.
// Hacia arriba los bytes son [boundary, boundary+n), hacia abajo [boundary-n, boundary).
func (d Direction) ByteAddr(boundary int, i int) int {
	if d == Down {
		return boundary - 1 - i
	}
	return boundary + i
}

// AlignOut redondea un límite a página hacia afuera del área (arriba o abajo según el sentido).
func (d Direction) AlignOut(boundary int) int {
	if d == Down {
		return boundary &^ (PageSize - 1)
	}
	return (boundary + PageSize - 1) &^ (PageSize - 1)
}

// Extent devuelve el rango [lo, hi) que cubren dos límites.
func Extent(a int, b int) (lo int, hi int) {
	if a <= b {
		return a, b
	}
	return b, a
}

// Region es una entrada de la tabla de símbolos o de la lista de regiones libres.
// Start es el límite desde donde arranca la región y End el límite opuesto, en el sentido del área.
// Start == End significa región vacía (entrada libre).
type Region struct {
	Start int `json:"rg_start"`
	End   int `json:"rg_end"`
	VMAID int `json:"vmaid"`
}

func (r Region) Empty() bool { return r.Start == r.End }

// VMAInfo es la foto de un área virtual para los dumps.
type VMAInfo struct {
	ID          int      `json:"id"`
	Direction   string   `json:"direction"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Sbrk        int      `json:"sbrk"`
	FreeRegions []Region `json:"free_regions"`
}

type PageTableRow struct {
	PGN      int          `json:"pgn"`
	PTE      uint32       `json:"pte"`
	Dirty    bool         `json:"dirty"`
	Location PageLocation `json:"location"`
}

type SymbolRow struct {
	ID     int    `json:"id"`
	Region Region `json:"region"`
}

// ProcessDump agrupa todo lo que se imprime de un proceso (tabla de páginas, regiones, áreas, cola de reemplazo).
type ProcessDump struct {
	PID              int            `json:"pid"`
	VMemSize         int            `json:"vmem_size"`
	PageTable        []PageTableRow `json:"page_table"`
	Symbols          []SymbolRow    `json:"symbols"`
	VMAs             []VMAInfo      `json:"vmas"`
	Replacement      string         `json:"replacement"`
	ReplacementQueue []int          `json:"replacement_queue"`
	ActiveSwap       int            `json:"active_swap"`
	RamMappedFrames  int            `json:"ram_mapped_frames"`
	RamFreeFrames    int            `json:"ram_free_frames"`
}
