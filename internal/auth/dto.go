package auth

import (
	"github.com/KromaEnergia/api-vendas/internal/models"
	"github.com/KromaEnergia/api-vendas/internal/venda"
)

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type LoginResponse struct {
	Token    string                 `json:"token"`
	Vendedor models.VendedorPublico `json:"vendedor"`
	Mensagem string                 `json:"mensagem"`
}

type registroRequest struct {
	NomeVendedor string `json:"nome_vendedor" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Senha        string `json:"senha" validate:"required"`
}

type RegistroResponse struct {
	Vendedor models.VendedorPublico `json:"vendedor"`
	Mensagem string                 `json:"mensagem"`
}

type alterarSenhaRequest struct {
	SenhaAtual string `json:"senha_atual"`
	NovaSenha  string `json:"nova_senha"`
}

type DashboardResponse struct {
	Vendedor     models.VendedorPublico `json:"vendedor"`
	Vendas       []models.VendaDTO      `json:"vendas"`
	Estatisticas venda.Estatisticas     `json:"estatisticas"`
}
