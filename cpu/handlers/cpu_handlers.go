package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/cpu/services"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/web/server"
)

// ExecuteProcessHandler ejecuta el script pedido hasta el final y devuelve cómo quedó el proceso.
func ExecuteProcessHandler(cpuConfig *models.Config, memory services.MemoryClient) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.ExecuteRequest
		if !server.DecodeJsonRequest(w, r, &request) {
			return
		}

		path := filepath.Join(cpuConfig.ScriptsPath, filepath.Base(request.Script))
		pcb, status, err := services.RunScript(request.PID, path, cpuConfig.VMemSize, memory)
		if err != nil {
			slog.Error(fmt.Sprintf("## PID: %d - No se pudo ejecutar %s: %v", request.PID, path, err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		server.SendJsonResponse(w, models.ExecuteResponse{
			PID:       pcb.PID,
			PC:        pcb.PC,
			Registers: pcb.Registers,
			Status:    status,
		})
	}
}
