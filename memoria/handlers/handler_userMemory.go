package handlers

import (
	"net/http"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/web/server"
)

// Las operaciones de memoria siempre responden 200; el resultado va en status (0, 1 o -3000).

func AllocHandler(memory *services.Memory) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AllocRequest
		if !server.DecodeJsonRequest(w, r, &req) {
			return
		}
		address, err := memory.Alloc(req.PID, req.Size, req.Reg)
		sendSyscallResponse(w, models.SyscallResponse{Address: address}, err)
	}
}

func MallocHandler(memory *services.Memory) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AllocRequest
		if !server.DecodeJsonRequest(w, r, &req) {
			return
		}
		address, err := memory.Malloc(req.PID, req.Size, req.Reg)
		sendSyscallResponse(w, models.SyscallResponse{Address: address}, err)
	}
}

func FreeHandler(memory *services.Memory) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.FreeRequest
		if !server.DecodeJsonRequest(w, r, &req) {
			return
		}
		err := memory.Free(req.PID, req.Reg)
		sendSyscallResponse(w, models.SyscallResponse{}, err)
	}
}

func ReadHandler(memory *services.Memory) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ReadRequest
		if !server.DecodeJsonRequest(w, r, &req) {
			return
		}
		value, err := memory.Read(req.PID, req.Reg, req.Offset)
		sendSyscallResponse(w, models.SyscallResponse{Value: value}, err)
	}
}

func WriteHandler(memory *services.Memory) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.WriteRequest
		if !server.DecodeJsonRequest(w, r, &req) {
			return
		}
		err := memory.Write(req.PID, req.Data, req.Reg, req.Offset)
		sendSyscallResponse(w, models.SyscallResponse{}, err)
	}
}

func sendSyscallResponse(w http.ResponseWriter, response models.SyscallResponse, err error) {
	response.Status = models.StatusFromError(err)
	if err != nil {
		response.Address = 0
		response.Value = 0
		response.Error = err.Error()
	}
	server.SendJsonResponse(w, response)
}
