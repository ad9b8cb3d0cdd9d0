package domain

import "fmt"

// LoadError é gerado durante a carga da base de registros. É fatal na
// inicialização e o serviço nunca sobe com uma base parcial
type LoadError struct {
	Source string
	Line   int    // linha da entrada a partir de 1, 0 quando não se refere a uma linha
	Column string // coluna com problema, se houver
	Err    error
}

// Error descreve a fonte, a linha e a coluna quando conhecidas
func (e *LoadError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("load %s: line %d, column %s: %v", e.Source, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("load %s: line %d: %v", e.Source, e.Line, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: column %s: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
}

// Unwrap expõe a causa para errors.Is e errors.As
func (e *LoadError) Unwrap() error {
	return e.Err
}
