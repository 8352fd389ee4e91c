package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
)

// DecodeJSON lê o corpo da requisição em dst. Campos desconhecidos são ignorados.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}

// PathID lê um id numérico positivo do segmento {name} da rota.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError(fmt.Sprintf("ID inválido: %s.", raw))
	}
	return id, nil
}

// QueryInt lê um inteiro da query string. Ausente ou inválido vira 0; o serviço aplica o padrão.
func QueryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil {
		return 0
	}
	return n
}

// Filtros copia da query string apenas as chaves informadas.
func Filtros(r *http.Request, keys ...string) map[string]string {
	q := r.URL.Query()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			out[k] = v
		}
	}
	return out
}
