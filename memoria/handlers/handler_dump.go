package handlers

import (
	"net/http"
	"strconv"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/web/server"
)

// DumpMemoryHandler genera el archivo .dmp del proceso.
func DumpMemoryHandler(memory *services.Memory) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.PIDRequest
		if !server.DecodeJsonRequest(w, r, &req) {
			return
		}

		file, dump, err := memory.ExecuteDumpMemory(req.PID)
		if err != nil {
			writeProcessError(w, err)
			return
		}
		server.SendJsonResponse(w, models.DumpResponse{File: file, Dump: dump})
	}
}

// GetDumpHandler devuelve el estado del proceso sin escribir archivo. Ej: GET /memoria/dump?pid=1
func GetDumpHandler(memory *services.Memory) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		pid, err := strconv.Atoi(r.URL.Query().Get("pid"))
		if err != nil {
			http.Error(w, "pid inválido", http.StatusBadRequest)
			return
		}

		dump, err := memory.DumpProcess(pid)
		if err != nil {
			writeProcessError(w, err)
			return
		}
		server.SendJsonResponse(w, dump)
	}
}
