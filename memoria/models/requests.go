package models

type ProcessRequest struct {
	PID      int `json:"pid"`
	VMemSize int `json:"vmem_size"` // 0 => vmem_size del config
}

type PIDRequest struct {
	PID int `json:"pid"`
}

// AllocRequest sirve para ALLOC (área de datos) y MALLOC (heap)
type AllocRequest struct {
	PID  int `json:"pid"`
	Size int `json:"size"`
	Reg  int `json:"reg"`
}

type FreeRequest struct {
	PID int `json:"pid"`
	Reg int `json:"reg"`
}

type ReadRequest struct {
	PID    int `json:"pid"`
	Reg    int `json:"reg"`
	Offset int `json:"offset"`
}

type WriteRequest struct {
	PID    int   `json:"pid"`
	Data   uint8 `json:"data"`
	Reg    int   `json:"reg"`
	Offset int   `json:"offset"`
}

// SyscallResponse lleva el código de retorno de la operación (0, 1 o -3000) y el resultado si lo hay.
type SyscallResponse struct {
	Status  int    `json:"status"`
	Address int    `json:"address,omitempty"`
	Value   uint8  `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
}

type MemoryInfo struct {
	PageSize    int    `json:"page_size"`
	VMemSize    int    `json:"vmem_size"`
	Replacement string `json:"replacement"`
	HeapGrowsUp bool   `json:"heap_grows_up"`
}

type DumpResponse struct {
	File string      `json:"file"`
	Dump ProcessDump `json:"dump"`
}
