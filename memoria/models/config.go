package models

import (
	"fmt"
)

const (
	PageSize = 256 // bytes por página/frame
	PageBits = 8   // log2(PageSize)

	MaxSymbols     = 30 // entradas de la tabla de símbolos (regiones) por proceso
	MaxSwapDevices = 4  // dispositivos de swap por proceso
)

// Algoritmos de reemplazo soportados
const (
	ReplacementFIFO = "FIFO"
	ReplacementLRU  = "LRU"
)

type Config struct {
	PortMemory     int    `json:"port_memory"`
	RamSize        int    `json:"ram_size"`
	RamSequential  bool   `json:"ram_sequential"`
	SwapSizes      []int  `json:"swap_sizes"`
	SwapSequential bool   `json:"swap_sequential"`
	VMemSize       int    `json:"vmem_size"`
	Replacement    string `json:"replacement"`
	HeapGrowsUp    bool   `json:"heap_grows_up"`
	LogLevel       string `json:"log_level"`
	DumpPath       string `json:"dump_path"`
}

var MemoryConfig *Config

// Validate chequea que los tamaños entren en el formato de la PTE y sean múltiplos de página.
func (c *Config) Validate() error {
	if err := validateDeviceSize("ram_size", c.RamSize, MaxFPN+1); err != nil {
		return err
	}

	if len(c.SwapSizes) == 0 || len(c.SwapSizes) > MaxSwapDevices {
		return fmt.Errorf("%w: swap_sizes debe tener entre 1 y %d dispositivos, tiene %d", ErrInvalidConfig, MaxSwapDevices, len(c.SwapSizes))
	}
	for i, size := range c.SwapSizes {
		if err := validateDeviceSize(fmt.Sprintf("swap_sizes[%d]", i), size, MaxSwapOffset+1); err != nil {
			return err
		}
	}

	if err := ValidateVMemSize(c.VMemSize); err != nil {
		return err
	}

	if c.Replacement != ReplacementFIFO && c.Replacement != ReplacementLRU {
		return fmt.Errorf("%w: replacement %q no soportado (FIFO o LRU)", ErrInvalidConfig, c.Replacement)
	}

	return nil
}

// ValidateVMemSize chequea el tamaño del espacio virtual de un proceso.
func ValidateVMemSize(size int) error {
	if size <= 0 || size%PageSize != 0 {
		return fmt.Errorf("%w: vmem_size %d debe ser un múltiplo positivo de %d", ErrInvalidConfig, size, PageSize)
	}
	return nil
}

func validateDeviceSize(name string, size int, maxFrames int) error {
	if size <= 0 || size%PageSize != 0 {
		return fmt.Errorf("%w: %s=%d debe ser un múltiplo positivo de %d", ErrInvalidConfig, name, size, PageSize)
	}
	if size/PageSize > maxFrames {
		return fmt.Errorf("%w: %s=%d supera los %d frames direccionables", ErrInvalidConfig, name, size, maxFrames)
	}
	return nil
}
