package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// IDLength é o tamanho dos identificadores das execuções do digest
const IDLength = 10

// caracteres parecidos (0/O, 1/l/I) ficam de fora para facilitar a leitura nos logs
const idAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// GenerateID gera um identificador curto com go-nanoid
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, IDLength)
}
