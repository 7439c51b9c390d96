package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatarCPF_Validos(t *testing.T) {
	casos := map[string]string{
		"12345678901":     "123.456.789-01",
		"123.456.789-01":  "123.456.789-01",
		" 529 982 247 25": "529.982.247-25",
		"000.000.001-91":  "000.000.001-91",
	}
	for entrada, esperado := range casos {
		got, err := FormatarCPF(entrada)
		require.NoError(t, err, entrada)
		assert.Equal(t, esperado, got)
	}
}

func TestFormatarCPF_Invalidos(t *testing.T) {
	casos := []string{
		"",
		"1234567890",
		"123456789012",
		"111.111.111-11",
		"00000000000",
		"99999999999",
		"abc.def.ghi-jk",
	}
	for _, entrada := range casos {
		_, err := FormatarCPF(entrada)
		assert.ErrorIs(t, err, ErrCPFInvalido, entrada)
		assert.False(t, ValidarCPF(entrada), entrada)
	}
}

func TestFormatarCPF_TodosOsComprimentosDiferentesDeOnze(t *testing.T) {
	for n := 0; n <= 20; n++ {
		if n == 11 {
			continue
		}
		d := ""
		for i := 0; i < n; i++ {
			d += string(rune('0' + i%10))
		}
		assert.False(t, ValidarCPF(d), d)
	}
}

func TestSenha(t *testing.T) {
	hash, err := HashSenha("s3nha")
	require.NoError(t, err)

	assert.True(t, VerificarSenha(hash, "s3nha"))
	assert.False(t, VerificarSenha(hash, "outra"))
	assert.False(t, VerificarSenha("", "s3nha"))
}
