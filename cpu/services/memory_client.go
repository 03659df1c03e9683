package services

import (
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/cpu/models"
	memoriaModel "github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/web/client"
)

// MemoryClient son las operaciones que la CPU le pide a memoria.
type MemoryClient interface {
	CreateProcess(pid int, vmemsz int) error
	EndProcess(pid int) error
	Alloc(pid int, size int, reg int) (memoriaModel.SyscallResponse, error)
	Malloc(pid int, size int, reg int) (memoriaModel.SyscallResponse, error)
	Free(pid int, reg int) (memoriaModel.SyscallResponse, error)
	Read(pid int, reg int, offset int) (memoriaModel.SyscallResponse, error)
	Write(pid int, data uint8, reg int, offset int) (memoriaModel.SyscallResponse, error)
}

// HTTPMemoryClient habla con el módulo de memoria por HTTP.
type HTTPMemoryClient struct {
	Ip   string
	Port int
}

func NewHTTPMemoryClient(cpuConfig *models.Config) *HTTPMemoryClient {
	return &HTTPMemoryClient{Ip: cpuConfig.IpMemory, Port: cpuConfig.PortMemory}
}

// RequestMemoryConfig consulta los parámetros de paginación de memoria.
func (c *HTTPMemoryClient) RequestMemoryConfig() (memoriaModel.MemoryInfo, error) {
	var info memoriaModel.MemoryInfo
	if err := client.DoJsonRequest(c.Port, c.Ip, "GET", "config/memoria", nil, &info); err != nil {
		return info, fmt.Errorf("error al obtener la configuración de memoria: %w", err)
	}
	slog.Debug("Config de memoria recibida", "page_size", info.PageSize, "vmem_size", info.VMemSize, "reemplazo", info.Replacement)
	return info, nil
}

func (c *HTTPMemoryClient) CreateProcess(pid int, vmemsz int) error {
	request := memoriaModel.ProcessRequest{PID: pid, VMemSize: vmemsz}
	return client.DoJsonRequest(c.Port, c.Ip, "POST", "memoria/proceso", request, nil)
}

func (c *HTTPMemoryClient) EndProcess(pid int) error {
	return client.DoJsonRequest(c.Port, c.Ip, "POST", "memoria/liberarproceso", memoriaModel.PIDRequest{PID: pid}, nil)
}

func (c *HTTPMemoryClient) Alloc(pid int, size int, reg int) (memoriaModel.SyscallResponse, error) {
	return c.syscall("memoria/alloc", memoriaModel.AllocRequest{PID: pid, Size: size, Reg: reg})
}

func (c *HTTPMemoryClient) Malloc(pid int, size int, reg int) (memoriaModel.SyscallResponse, error) {
	return c.syscall("memoria/malloc", memoriaModel.AllocRequest{PID: pid, Size: size, Reg: reg})
}

func (c *HTTPMemoryClient) Free(pid int, reg int) (memoriaModel.SyscallResponse, error) {
	return c.syscall("memoria/free", memoriaModel.FreeRequest{PID: pid, Reg: reg})
}

func (c *HTTPMemoryClient) Read(pid int, reg int, offset int) (memoriaModel.SyscallResponse, error) {
	return c.syscall("memoria/read", memoriaModel.ReadRequest{PID: pid, Reg: reg, Offset: offset})
}

func (c *HTTPMemoryClient) Write(pid int, data uint8, reg int, offset int) (memoriaModel.SyscallResponse, error) {
	return c.syscall("memoria/write", memoriaModel.WriteRequest{PID: pid, Data: data, Reg: reg, Offset: offset})
}

func (c *HTTPMemoryClient) syscall(query string, request interface{}) (memoriaModel.SyscallResponse, error) {
	var response memoriaModel.SyscallResponse
	err := client.DoJsonRequest(c.Port, c.Ip, "POST", query, request, &response)
	return response, err
}
