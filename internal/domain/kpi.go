package domain

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// KPI é um indicador escalar que pode estar indisponível, como o ticket médio
// de uma seleção vazia
type KPI[T any] struct {
	Value T
	Valid bool
}

// Available cria um indicador disponível com o valor v
func Available[T any](v T) KPI[T] {
	return KPI[T]{Value: v, Valid: true}
}

// NotAvailable cria um indicador indisponível
func NotAvailable[T any]() KPI[T] {
	return KPI[T]{}
}

// Get retorna o valor e se ele está disponível
func (k KPI[T]) Get() (T, bool) {
	return k.Value, k.Valid
}

// String retorna "N/A" quando o indicador não está disponível
func (k KPI[T]) String() string {
	if !k.Valid {
		return "N/A"
	}
	return fmt.Sprint(k.Value)
}

// MarshalJSON escreve null quando o indicador não está disponível
func (k KPI[T]) MarshalJSON() ([]byte, error) {
	if !k.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(k.Value)
}

// UnmarshalJSON lê null como indicador indisponível
func (k *KPI[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*k = KPI[T]{}
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*k = Available(v)
	return nil
}
