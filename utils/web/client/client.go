package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// DoRequest realiza una petición HTTP (GET, POST, PUT, DELETE, etc.) y retorna la respuesta del servidor.
// Si el servidor no responde 200 se devuelve la respuesta junto con un error.
//
// Parámetros:
//   - port: el puerto al que se hará la petición
//   - ip: la IP o dominio del servidor
//   - metodo: metodo HTTP
//   - query: parte final de la URL
//   - bodies ...[]byte: (opcional) body del request, puede pasarse vacío.
//
// Ejemplo:
//
//	func main() {
//		response, err := client.DoRequest(8002, "127.0.0.1", "GET", "memoria")
//		if err != nil {
//			slog.Error(fmt.Sprintf("Ocurrió un error: %v", err))
//			return
//		}
//		defer response.Body.Close()
//	}
func DoRequest(port int, ip string, metodo string, query string, bodies ...[]byte) (*http.Response, error) {
	url := fmt.Sprintf("http://%s:%d/%s", ip, port, query)

	req, err := http.NewRequest(metodo, url, ifBody(bodies...))
	if err != nil {
		slog.Error(fmt.Sprintf("error creando request a ip: %s puerto: %d", ip, port))
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	respuesta, err := httpClient.Do(req)
	if err != nil {
		slog.Error(fmt.Sprintf("error enviando request a ip: %s puerto: %d - %v", ip, port, err))
		return nil, err
	}

	if respuesta.StatusCode != http.StatusOK {
		errorMsg := fmt.Errorf("status error: %d %s", respuesta.StatusCode, http.StatusText(respuesta.StatusCode))
		slog.Error(errorMsg.Error(), "url", url)
		return respuesta, errorMsg
	}

	return respuesta, nil
}

// DoJsonRequest serializa body (si no es nil), hace la petición y decodifica la respuesta en out (si no es nil).
func DoJsonRequest(port int, ip string, metodo string, query string, body interface{}, out interface{}) error {
	var bodies [][]byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error serializando request a %s: %w", query, err)
		}
		bodies = append(bodies, data)
	}

	response, err := DoRequest(port, ip, metodo, query, bodies...)
	if response != nil {
		defer response.Body.Close()
	}
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("error decodificando respuesta de %s: %w", query, err)
	}
	return nil
}

func ifBody(bodies ...[]byte) io.Reader {
	if len(bodies) == 0 || bodies[0] == nil {
		return nil
	}
	return bytes.NewBuffer(bodies[0])
}
