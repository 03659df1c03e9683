package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/web/server"
)

// CreateProcessHandler crea el contexto de memoria de un proceso.
func CreateProcessHandler(memory *services.Memory) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ProcessRequest
		if !server.DecodeJsonRequest(w, r, &req) {
			return
		}

		proc, err := memory.CreateProcess(req.PID, req.VMemSize)
		if err != nil {
			writeProcessError(w, err)
			return
		}

		server.SendJsonResponse(w, models.ProcessRequest{PID: proc.PID, VMemSize: proc.VMemSize})
	}
}

// EndProcessHandler libera toda la memoria de un proceso que terminó.
func EndProcessHandler(memory *services.Memory) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.PIDRequest
		if !server.DecodeJsonRequest(w, r, &req) {
			return
		}

		if err := memory.ReleaseProcess(req.PID); err != nil {
			writeProcessError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func writeProcessError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrProcessNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrProcessExists):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidConfig):
		status = http.StatusBadRequest
	}
	slog.Error(fmt.Sprintf("error en el ciclo de vida del proceso: %v", err))
	http.Error(w, err.Error(), status)
}
