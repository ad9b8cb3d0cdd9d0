// Package apiErrors define os códigos de erro da API e o corpo JSON das respostas de erro
package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // requisição malformada
	ErrMissingRequiredData = "VAL_002" // parâmetro obrigatório ausente
	ErrInvalidFormat       = "VAL_003" // parâmetro em formato inválido
	ErrNotFound            = "VAL_004" // recurso inexistente
	ErrMethodNotAllowed    = "VAL_005" // método não suportado pela rota

	// Limite de requisições
	ErrTooManyRequests = "RATE_001"

	// Erros do servidor
	ErrInternalServer    = "SRV_001"
	ErrDatabaseOperation = "SRV_002"
	ErrChartRendering    = "SRV_003"
	ErrJobUnavailable    = "SRV_004" // job agendado não configurado
)

// httpStatusMap associa cada código ao status HTTP da resposta
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrNotFound:            http.StatusNotFound,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrTooManyRequests:     http.StatusTooManyRequests,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrChartRendering:      http.StatusInternalServerError,
	ErrJobUnavailable:      http.StatusServiceUnavailable,
}

// APIError é o corpo JSON de toda resposta de erro
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Error implementa a interface error
func (e APIError) Error() string {
	return e.Code + ": " + e.Message
}

// Status retorna o status HTTP do código, ou 500 para códigos desconhecidos
func Status(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o corpo de erro padrão para o código
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(Status(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError converte err em um APIError com o código informado
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
