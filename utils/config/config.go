package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Validator lo implementan las configuraciones que quieren chequear sus valores después de decodificarse.
type Validator interface {
	Validate() error
}

// InitConfig lee el archivo de configuración y deja sus valores en config. Si el archivo no existe,
// no se puede decodificar o la validación falla, se corta la ejecución con panic.
//
// Parámetros:
//   - filePath: ubicacion donde se encuentra el archivo de configuracion
//   - config: puntero a la estructura a completar
//
// Ejemplo:
//
//	func main() {
//		var memoryConfig models.Config
//		config.InitConfig("./configs/memoria.json", &memoryConfig)
//	}
func InitConfig(filePath string, config interface{}) {
	if err := LoadConfig(filePath, config); err != nil {
		slog.Error(fmt.Sprintf("error al configurar el archivo %s: %v", filePath, err))
		panic(err)
	}
}

// LoadConfig es igual a InitConfig pero devuelve el error en lugar de hacer panic.
func LoadConfig(filePath string, config interface{}) error {
	if err := setupConfig(filePath, config); err != nil {
		return err
	}

	if validator, ok := config.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("configuración inválida en %s: %w", filePath, err)
		}
	}

	return nil
}

func setupConfig(filePath string, config interface{}) error {
	configFile, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer configFile.Close()

	jsonParser := json.NewDecoder(configFile)
	jsonParser.DisallowUnknownFields()

	if err := jsonParser.Decode(config); err != nil {
		return fmt.Errorf("error decodificando %s: %w", filePath, err)
	}

	return nil
}
