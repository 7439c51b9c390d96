package utils

import (
	"errors"
	"strings"
)

var ErrCPFInvalido = errors.New("CPF inválido")

// SomenteDigitos remove tudo que não for dígito.
func SomenteDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidarCPF confere apenas o formato: 11 dígitos e não todos iguais.
// Dígitos verificadores não são calculados.
func ValidarCPF(cpf string) bool {
	d := SomenteDigitos(cpf)
	if len(d) != 11 {
		return false
	}
	return strings.Count(d, d[:1]) != 11
}

// FormatarCPF devolve o CPF no formato XXX.XXX.XXX-XX ou ErrCPFInvalido.
func FormatarCPF(cpf string) (string, error) {
	if !ValidarCPF(cpf) {
		return "", ErrCPFInvalido
	}
	d := SomenteDigitos(cpf)
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:], nil
}
