package handlers

import (
	"net/http"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/web/handlers"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/web/server"
)

// RegisterRoutes agrega al mux todas las rutas del módulo de memoria.
func RegisterRoutes(mux *http.ServeMux, memory *services.Memory) {
	mux.HandleFunc("GET /", handlers.HandshakeHandler("Bienvenido al módulo de Memoria"))
	mux.HandleFunc("GET /memoria", handlers.HandshakeHandler("Memoria en funcionamiento 🚀"))
	mux.HandleFunc("GET /config/memoria", MemoryConfigHandler(memory))

	// ciclo de vida de los procesos
	mux.HandleFunc("POST /memoria/proceso", CreateProcessHandler(memory))
	mux.HandleFunc("POST /memoria/liberarproceso", EndProcessHandler(memory))

	// operaciones de las instrucciones
	mux.HandleFunc("POST /memoria/alloc", AllocHandler(memory))
	mux.HandleFunc("POST /memoria/malloc", MallocHandler(memory))
	mux.HandleFunc("POST /memoria/free", FreeHandler(memory))
	mux.HandleFunc("POST /memoria/read", ReadHandler(memory))
	mux.HandleFunc("POST /memoria/write", WriteHandler(memory))

	mux.HandleFunc("POST /memoria/dump", DumpMemoryHandler(memory))
	mux.HandleFunc("GET /memoria/dump", GetDumpHandler(memory))
}

func MemoryConfigHandler(memory *services.Memory) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		config := memory.Config()
		server.SendJsonResponse(w, models.MemoryInfo{
			PageSize:    models.PageSize,
			VMemSize:    config.VMemSize,
			Replacement: config.Replacement,
			HeapGrowsUp: config.HeapGrowsUp,
		})
	}
}
