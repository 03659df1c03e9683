package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Para su uso se debe posicionar en la carpeta scripts
// > ./update_config ip_memory 192.168.1.100
// > ./update_config replacement LRU ram_size 512 swap_sizes [1024,2048]

// módulos cuyos configs se actualizan
var modules = []string{"cpu", "memoria"}

func main() {
	// Verificar que se pasen argumentos en pares: clave1 valor1 clave2 valor2 ...
	if len(os.Args) < 3 || len(os.Args)%2 != 1 {
		fmt.Println("Uso: update_config <clave_1> <valor_1> [<clave_2> <valor_2> ...]")
		fmt.Println("Ejemplo: update_config ip_memory 192.168.0.10 replacement LRU")
		return
	}

	updates := parseUpdates(os.Args[1:])

	fmt.Println("Valores a actualizar:")
	for k, v := range updates {
		fmt.Printf("  %s: %v\n", k, v)
	}

	modified, err := updateConfigs("..", updates)
	if err != nil {
		fmt.Printf("Error actualizando configs: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nArchivos modificados: %d\n", modified)
}

// parseUpdates arma el mapa clave -> valor. Los valores que son JSON válido (números, booleanos,
// listas) se guardan con su tipo, el resto como string.
func parseUpdates(args []string) map[string]interface{} {
	updates := make(map[string]interface{})
	for i := 0; i+1 < len(args); i += 2 {
		var parsedValue interface{}
		if err := json.Unmarshal([]byte(args[i+1]), &parsedValue); err != nil {
			parsedValue = args[i+1]
		}
		updates[args[i]] = parsedValue
	}
	return updates
}

// updateConfigs reemplaza las claves existentes en los .json de <root>/<modulo>/configs.
// Las claves que un archivo no tiene no se agregan. Devuelve cuántos archivos cambió.
func updateConfigs(root string, updates map[string]interface{}) (int, error) {
	modified := 0
	for _, module := range modules {
		paths, err := filepath.Glob(filepath.Join(root, module, "configs", "*.json"))
		if err != nil {
			return modified, err
		}

		for _, path := range paths {
			changed, err := updateConfigFile(path, updates)
			if err != nil {
				return modified, err
			}
			if changed {
				fmt.Printf("  Actualizado %s\n", path)
				modified++
			}
		}
	}
	return modified, nil
}

func updateConfigFile(path string, updates map[string]interface{}) (bool, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("error al leer el archivo %s: %w", path, err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(fileContent, &data); err != nil {
		return false, fmt.Errorf("error al parsear JSON en el archivo %s: %w", path, err)
	}

	changed := false
	for key, value := range updates {
		if _, ok := data[key]; ok {
			data[key] = value
			changed = true
		}
	}
	if !changed {
		return false, nil
	}

	newJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return false, fmt.Errorf("error al serializar JSON en el archivo %s: %w", path, err)
	}
	return true, os.WriteFile(path, newJSON, 0644)
}
