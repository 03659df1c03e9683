package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// InitLogger permite loguear tanto en consola como en archivo según el nivel que se le pase.
//
// Parámetros:
//   - logPath: la ubicación donde se va encontrar el archivo
//   - logLevel: nivel de logueo, este dato viene definido en el archivo de config.
//
// Ejemplo:
//
//	func main() {
//		log.InitLogger("./logs/memoria.log", "INFO")
//	}
func InitLogger(logPath string, logLevel string) {
	if dir := filepath.Dir(logPath); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			panic(err)
		}
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		panic(err)
	}

	// Consola y archivo al mismo tiempo.
	multiWriter := io.MultiWriter(os.Stdout, logFile)

	level, err := convertStringToLogLevel(logLevel)

	handler := slog.NewTextHandler(multiWriter, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	// Recién ahora podemos avisar que el nivel no existía
	if err != nil {
		slog.Warn(err.Error())
	}

	slog.Debug("Se ha configurado correctamente el logger", "archivo", logPath, "nivel", level.String())
}

// BuildLogPath arma la ruta del log de una instancia, por ejemplo BuildLogPath("cpu_%s", "1") => ./logs/cpu_1.log
func BuildLogPath(format string, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("identificador vacío para el log %q", format)
	}
	return filepath.Join(".", "logs", fmt.Sprintf(format, id)+".log"), nil
}

// convertStringToLogLevel modifica dinámicamente el nivel de log que deseamos tener en el sistema.
func convertStringToLogLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("no existe el nivel %q, se coloca INFO por defecto", levelStr)
	}
}
