// Package utils reúne funções auxiliares de datas, valores e identificadores
package utils

import (
	"time"

	"github.com/pkg/errors"
)

// ParseDate lê uma data opcional no formato YYYY-MM-DD. String vazia
// retorna data nil sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, errors.Errorf("invalid date %q, expected YYYY-MM-DD", dateStr)
	}

	return &date, nil
}
