package helpers

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/config"
	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/log"
)

// crea un directorio en el path especificado.
func CreateDirectory(dir string) error {
	err := os.MkdirAll(dir, os.ModePerm)

	if err != nil {
		slog.Error(fmt.Sprintf("Error al crear el directorio %s: %v", dir, err))
		return err
	}

	slog.Debug(fmt.Sprintf("Directorio %s creado o ya existía.", dir))
	return nil
}

// InitMemory carga el config, levanta el logger y crea el directorio de dumps.
func InitMemory(configPath string, logPath string) *models.Config {
	var memoryConfig models.Config
	config.InitConfig(configPath, &memoryConfig)
	models.MemoryConfig = &memoryConfig

	log.InitLogger(logPath, memoryConfig.LogLevel)

	slog.Debug(fmt.Sprintf("Port Memory: %d", memoryConfig.PortMemory))
	slog.Debug(fmt.Sprintf("RAM: %d bytes - Swap: %v - Reemplazo: %s", memoryConfig.RamSize, memoryConfig.SwapSizes, memoryConfig.Replacement))

	if memoryConfig.DumpPath == "" {
		memoryConfig.DumpPath = "./dump_files"
	}
	if err := CreateDirectory(memoryConfig.DumpPath); err != nil {
		panic(err)
	}
	return &memoryConfig
}

func GetDumpName(pid int) string {
	timestamp := time.Now().Format("20060102-150405")
	return fmt.Sprintf("%d-%s.dmp", pid, timestamp)
}
