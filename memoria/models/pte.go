package models

import "fmt"

// PTE es una entrada de la tabla de páginas empaquetada en 32 bits:
//
//	bit 31      PRESENT
//	bit 30      SWAPPED
//	bit 29      RESERVED
//	bit 28      DIRTY
//	bits 0-12   FPN            (SWAPPED = 0)
//	bits 0-4    SWPTYP         (SWAPPED = 1, índice del dispositivo de swap)
//	bits 5-25   SWPOFF         (SWAPPED = 1, frame dentro del dispositivo)
//
// FPN y (SWPTYP, SWPOFF) comparten bits: antes de leer cualquiera de los dos hay que mirar SWAPPED.
type PTE uint32

const (
	PTEPresentMask  PTE = 1 << 31
	PTESwappedMask  PTE = 1 << 30
	PTEReservedMask PTE = 1 << 29
	PTEDirtyMask    PTE = 1 << 28

	pteFPNLoBit    = 0
	pteSwpTypLoBit = 0
	pteSwpOffLoBit = 5

	PTEFPNMask    PTE = 0x1FFF << pteFPNLoBit
	PTESwpTypMask PTE = 0x1F << pteSwpTypLoBit
	PTESwpOffMask PTE = 0x1FFFFF << pteSwpOffLoBit

	// bits que se reinterpretan según SWAPPED
	pteSharedMask = PTEFPNMask | PTESwpTypMask | PTESwpOffMask

	MaxFPN        = int(PTEFPNMask >> pteFPNLoBit)
	MaxSwapType   = int(PTESwpTypMask >> pteSwpTypLoBit)
	MaxSwapOffset = int(PTESwpOffMask >> pteSwpOffLoBit)
)

// LocationKind es el estado de una página virtual.
type LocationKind int

const (
	Unmapped LocationKind = iota
	Resident
	Swapped
)

func (k LocationKind) String() string {
	switch k {
	case Resident:
		return "RESIDENT"
	case Swapped:
		return "SWAPPED"
	default:
		return "UNMAPPED"
	}
}

// PageLocation es la vista tipada de una PTE. Frame solo vale para Resident, Device y Offset solo para Swapped.
type PageLocation struct {
	Kind   LocationKind `json:"kind"`
	Frame  int          `json:"frame,omitempty"`
	Device int          `json:"device,omitempty"`
	Offset int          `json:"offset,omitempty"`
}

// InitPTE arma una entrada nueva. Con present en false devuelve una entrada vacía (página no mapeada).
func InitPTE(present bool, fpn int, dirty bool, swapped bool, swpTyp int, swpOff int) PTE {
	var pte PTE
	if !present {
		return pte
	}

	if swapped {
		pte.SetSwap(swpTyp, swpOff)
	} else {
		pte.SetFPN(fpn)
	}
	pte.SetDirty(dirty)
	return pte
}

// SetFPN marca la página como presente en el frame fpn y limpia SWAPPED.
func (p *PTE) SetFPN(fpn int) {
	*p |= PTEPresentMask
	*p &^= PTESwappedMask
	*p = (*p &^ pteSharedMask) | (PTE(fpn)<<pteFPNLoBit)&PTEFPNMask
}

// SetSwap marca la página como no presente y guardada en (swpTyp, swpOff).
func (p *PTE) SetSwap(swpTyp int, swpOff int) {
	*p &^= PTEPresentMask
	*p |= PTESwappedMask
	*p = (*p &^ pteSharedMask) |
		(PTE(swpTyp)<<pteSwpTypLoBit)&PTESwpTypMask |
		(PTE(swpOff)<<pteSwpOffLoBit)&PTESwpOffMask
}

func (p *PTE) SetDirty(dirty bool) {
	if dirty {
		*p |= PTEDirtyMask
	} else {
		*p &^= PTEDirtyMask
	}
}

func (p PTE) Present() bool { return p&PTEPresentMask != 0 }
func (p PTE) Swapped() bool { return p&PTESwappedMask != 0 }
func (p PTE) Dirty() bool   { return p&PTEDirtyMask != 0 }

func (p PTE) FPN() int        { return int((p & PTEFPNMask) >> pteFPNLoBit) }
func (p PTE) SwapType() int   { return int((p & PTESwpTypMask) >> pteSwpTypLoBit) }
func (p PTE) SwapOffset() int { return int((p & PTESwpOffMask) >> pteSwpOffLoBit) }

// Location decodifica la entrada mirando primero PRESENT y SWAPPED.
func (p PTE) Location() PageLocation {
	switch {
	case p.Present() && !p.Swapped():
		return PageLocation{Kind: Resident, Frame: p.FPN()}
	case p.Swapped() && !p.Present():
		return PageLocation{Kind: Swapped, Device: p.SwapType(), Offset: p.SwapOffset()}
	default:
		return PageLocation{Kind: Unmapped}
	}
}

func (p PTE) String() string {
	return fmt.Sprintf("%08x", uint32(p))
}

// DecodeAddress separa una dirección virtual en número de página y desplazamiento.
func DecodeAddress(addr int) (pgn int, offset int) {
	return addr >> PageBits, addr & (PageSize - 1)
}

// PhysicalAddress arma la dirección física de un byte. En las áreas que crecen hacia abajo
// el desplazamiento se cuenta desde el final de la página.
func PhysicalAddress(fpn int, offset int, direction Direction) int {
	if direction == Down {
		return (fpn << PageBits) + (PageSize - 1 - offset)
	}
	return (fpn << PageBits) + offset
}
