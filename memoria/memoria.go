package main

import (
	"fmt"
	"log/slog"
	"net/http"

	memoryHandler "github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/handlers"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/helpers"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/services"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/web/server"
)

const (
	//NO borrar el comentario de ConfigPath
	ConfigPath = "memoria/configs/memoria.json" //"./configs/memoria.json"
	LogPath    = "./logs/memoria.log"
)

func main() {
	memoryConfig := helpers.InitMemory(ConfigPath, LogPath)

	memory, err := services.NewMemory(memoryConfig)
	if err != nil {
		slog.Error(fmt.Sprintf("error inicializando la memoria: %v", err))
		panic(err)
	}
	slog.Debug("Memoria inicializada", "frames", memory.RAM().FrameCount(), "reemplazo", memory.Policy().Name())

	mux := http.NewServeMux()
	memoryHandler.RegisterRoutes(mux, memory)
	slog.Info("Memoria lista")

	err = server.InitServer(memoryConfig.PortMemory, mux)
	if err != nil {
		slog.Error(fmt.Sprintf("error initializing server: %v", err))
		panic(err)
	}
}
