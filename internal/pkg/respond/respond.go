package respond

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
)

// JSON escreve o corpo como JSON com o status informado.
func JSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(data)
}

// Error traduz o erro para o envelope {code, category, message} e devolve o status usado.
func Error(w http.ResponseWriter, err error) int {
	status, category, message := apperror.MapToHTTPStatus(err)
	_ = JSON(w, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
	return status
}

// Result escreve a resposta de um handler: data com successStatus quando err é nil,
// ou o envelope de erro. Erros 5xx são logados com a causa; 4xx só em debug.
func Result(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err == nil {
		if jsonErr := JSON(w, successStatus, data); jsonErr != nil {
			log.Error("Falha ao codificar JSON de resposta", jsonErr)
		}
		return
	}

	status := Error(w, err)
	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de servidor em %s %s", r.Method, r.URL.Path), err)
		return
	}
	log.Debug("Requisição rejeitada.", map[string]interface{}{"path": r.URL.Path, "status": status})
}
