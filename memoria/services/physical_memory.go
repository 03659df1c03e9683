package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/list"
)

// PhysicalMemory es un dispositivo de bytes dividido en frames de models.PageSize.
// Se usa tanto para la RAM como para cada dispositivo de swap.
type PhysicalMemory struct {
	mu         sync.Mutex
	storage    []byte
	maxSize    int
	sequential bool
	cursor     int
	// pila de frames libres, el tope es el último elemento
	freeFrames *list.ArrayList[int]
}

// NewPhysicalMemory crea un dispositivo de maxSize bytes con todos sus frames libres.
func NewPhysicalMemory(maxSize int, sequential bool) (*PhysicalMemory, error) {
	if maxSize <= 0 || maxSize%models.PageSize != 0 {
		return nil, fmt.Errorf("%w: tamaño de dispositivo %d no es múltiplo de %d", models.ErrInvalidConfig, maxSize, models.PageSize)
	}
	mp := &PhysicalMemory{
		storage:    make([]byte, maxSize),
		maxSize:    maxSize,
		sequential: sequential,
		freeFrames: list.NewArrayList[int](maxSize / models.PageSize),
	}
	mp.format()
	return mp, nil
}

// format arma la lista de frames libres de forma que el primero en salir sea el frame 0.
func (mp *PhysicalMemory) format() {
	frames := mp.maxSize / models.PageSize
	for fpn := frames - 1; fpn >= 0; fpn-- {
		mp.freeFrames.Add(fpn)
	}
}

func (mp *PhysicalMemory) checkAddr(addr int) error {
	if addr < 0 || addr >= mp.maxSize {
		return fmt.Errorf("%w: dirección física %d fuera de [0, %d)", models.ErrInvalidAddress, addr, mp.maxSize)
	}
	return nil
}

// moveCursor simula el acceso secuencial avanzando byte a byte (con vuelta) hasta addr.
func (mp *PhysicalMemory) moveCursor(addr int) {
	for mp.cursor != addr {
		mp.cursor = (mp.cursor + 1) % mp.maxSize
	}
}

// Read devuelve el byte en addr.
func (mp *PhysicalMemory) Read(addr int) (byte, error) {
	if err := mp.checkAddr(addr); err != nil {
		return 0, err
	}
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.sequential {
		mp.moveCursor(addr)
	}
	return mp.storage[addr], nil
}

// Write guarda value en addr.
func (mp *PhysicalMemory) Write(addr int, value byte) error {
	if err := mp.checkAddr(addr); err != nil {
		return err
	}
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.sequential {
		mp.moveCursor(addr)
	}
	mp.storage[addr] = value
	return nil
}

// GetFreeFrame saca un frame de la lista de libres.
func (mp *PhysicalMemory) GetFreeFrame() (int, error) {
	fpn, err := mp.freeFrames.Pop()
	if err != nil {
		return -1, models.ErrNoFreeFrame
	}
	return fpn, nil
}

// PutFreeFrame devuelve un frame a la lista de libres. Es el próximo en salir.
func (mp *PhysicalMemory) PutFreeFrame(fpn int) {
	mp.freeFrames.Add(fpn)
}

func (mp *PhysicalMemory) FreeFrameCount() int { return mp.freeFrames.Size() }
func (mp *PhysicalMemory) FrameCount() int     { return mp.maxSize / models.PageSize }
func (mp *PhysicalMemory) Size() int           { return mp.maxSize }

// FreeFrames lista los frames libres empezando por el próximo que se va a entregar.
func (mp *PhysicalMemory) FreeFrames() []int {
	stack := mp.freeFrames.GetAll()
	frames := make([]int, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		frames = append(frames, stack[i])
	}
	return frames
}

// Dump imprime las celdas distintas de cero como "addr: valor".
func (mp *PhysicalMemory) Dump() string {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	var sb strings.Builder
	for addr, value := range mp.storage {
		if value != 0 {
			fmt.Fprintf(&sb, "%08x: %02x\n", addr, value)
		}
	}
	return sb.String()
}

// CopyPage copia un frame completo entre dos dispositivos, byte a byte.
func CopyPage(src *PhysicalMemory, srcFPN int, dst *PhysicalMemory, dstFPN int) error {
	srcBase := srcFPN * models.PageSize
	dstBase := dstFPN * models.PageSize
	for i := 0; i < models.PageSize; i++ {
		value, err := src.Read(srcBase + i)
		if err != nil {
			return err
		}
		if err := dst.Write(dstBase+i, value); err != nil {
			return err
		}
	}
	return nil
}
