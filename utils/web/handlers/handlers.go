package handlers

import (
	"net/http"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/utils/web/server"
)

// HandshakeHandler se usa para chequear la conexión al servidor
//
// Parámetros:
//   - message: el mensaje que querés devolver en la respuesta
//
// Ejemplo:
//
//	func main() {
//		mux := http.NewServeMux()
//		mux.HandleFunc("GET /memoria", handlers.HandshakeHandler("Memoria en funcionamiento"))
//	}
func HandshakeHandler(message string) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		server.SendJsonResponse(writer, message)
	}
}
