package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// InitServer levanta el servidor con el handler indicado (si es nil se usa http.DefaultServeMux).
// En caso de no poder levantarlo retorna un error.
//
// Parámetros:
//   - port: puerto donde se iniciará el servidor
//   - handler: mux con las rutas del módulo
//
// Ejemplo:
//
//	func main() {
//		mux := http.NewServeMux()
//		err := server.InitServer(models.MemoryConfig.PortMemory, mux)
//		if err != nil {
//			panic(err)
//		}
//	}
func InitServer(port int, handler http.Handler) error {
	addr := ":" + strconv.Itoa(port)

	slog.Info("Servidor escuchando", "puerto", port)
	err := http.ListenAndServe(addr, handler)
	if err != nil {
		slog.Error(fmt.Sprintf("Error al escuchar en el puerto %s: %v", addr, err))
	}
	return err
}

// SendJsonResponse retorna la respuesta del servidor en formato JSON con status 200.
//
// Parámetros:
//   - writer: el http.ResponseWriter con el que se escribe la respuesta HTTP
//   - data: cualquier estructura de datos que querés enviar al cliente, se convierte automáticamente a JSON.
func SendJsonResponse(writer http.ResponseWriter, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		http.Error(writer, "Error al convertir datos a JSON", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(response)
}

// DecodeJsonRequest decodifica el body del request en dest. Si falla responde 400 y devuelve false.
func DecodeJsonRequest(writer http.ResponseWriter, request *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(request.Body).Decode(dest); err != nil {
		slog.Error("Invalid request", "ruta", request.URL.Path, "error", err)
		http.Error(writer, "Invalid request", http.StatusBadRequest)
		return false
	}
	return true
}
