package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	cpuHandler "github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/cpu/handlers"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/cpu/services"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/config"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/log"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/web/handlers"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/web/server"
)

const (
	//NO borrar el comentario de ConfigPath
	ConfigPath = "cpu/configs/cpu.json" //"./configs/cpu.json"
)

// Uso: ./bin/cpu [identificador] [script ...]
// Cada script corre en su propia goroutine con PID = posición (1, 2, ...). Sin scripts queda esperando en /cpu/exec.
func main() {
	if len(os.Args) < 2 {
		slog.Error("Faltó el identificador de la CPU. Ejemplo: ./bin/cpu [identificador] [script ...]")
		return
	}
	idCpu := os.Args[1]
	scripts := os.Args[2:]

	var cpuConfig models.Config
	config.InitConfig(ConfigPath, &cpuConfig)
	models.CpuConfig = &cpuConfig

	logPath, err := log.BuildLogPath("cpu_%s", idCpu)
	if err != nil {
		slog.Error("No se pudo construir el log path", "err", err)
		return
	}
	log.InitLogger(logPath, cpuConfig.LogLevel)

	memory := services.NewHTTPMemoryClient(&cpuConfig)
	if info, err := memory.RequestMemoryConfig(); err == nil && cpuConfig.VMemSize == 0 {
		cpuConfig.VMemSize = info.VMemSize
	}

	if len(scripts) > 0 {
		runScripts(scripts, &cpuConfig, memory)
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", handlers.HandshakeHandler(fmt.Sprintf("Bienvenido al módulo de CPU%s", idCpu)))
	mux.HandleFunc("GET /cpu", handlers.HandshakeHandler("Cpu en funcionamiento 🚀"))
	mux.HandleFunc("POST /cpu/exec", cpuHandler.ExecuteProcessHandler(&cpuConfig, memory))

	err = server.InitServer(cpuConfig.PortCpu, mux)
	if err != nil {
		slog.Error(fmt.Sprintf("error initializing server: %v", err))
		panic(err)
	}
}

func runScripts(scripts []string, cpuConfig *models.Config, memory services.MemoryClient) {
	var wg sync.WaitGroup
	for i, script := range scripts {
		wg.Add(1)
		go func(pid int, script string) {
			defer wg.Done()
			path := filepath.Join(cpuConfig.ScriptsPath, script)
			pcb, status, err := services.RunScript(pid, path, cpuConfig.VMemSize, memory)
			if err != nil {
				slog.Error(fmt.Sprintf("## PID: %d - No se pudo ejecutar %s: %v", pid, path, err))
				return
			}
			slog.Info(fmt.Sprintf("## PID: %d - Registros: %v - Estado: %d", pid, pcb.Registers, status))
		}(i+1, script)
	}
	wg.Wait()
}
