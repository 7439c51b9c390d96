// Package router monta a tabela de rotas da API sob /api.
package router

import (
	"net/http"

	"github.com/KromaEnergia/api-vendas/internal/auth"
	"github.com/KromaEnergia/api-vendas/internal/config"
	"github.com/KromaEnergia/api-vendas/internal/importacao"
	"github.com/KromaEnergia/api-vendas/internal/middleware"
	"github.com/KromaEnergia/api-vendas/internal/tabelacomissao"
	"github.com/KromaEnergia/api-vendas/internal/utils"
	"github.com/KromaEnergia/api-vendas/internal/venda"
	"github.com/KromaEnergia/api-vendas/internal/vendedor"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const Prefixo = "/api"

// New devolve o handler HTTP completo: rotas, CORS, recuperação de panic e log.
func New(db *gorm.DB, cfg *config.Config, logger zerolog.Logger) http.Handler {
	// Repositórios
	vendedorRepo := vendedor.NewRepository(db)
	tabelaRepo := tabelacomissao.NewRepository(db)
	vendaRepo := venda.NewRepository(db)

	// Handlers
	authHandler := auth.NewHandler(auth.NewTokens(cfg.JWT.Secret, cfg.JWT.Expiracao), vendedorRepo, vendaRepo)
	gate := authHandler.Gate()
	vendedorHandler := vendedor.NewHandler(vendedorRepo)
	tabelaHandler := tabelacomissao.NewHandler(tabelaRepo)
	vendaHandler := venda.NewHandler(vendaRepo)
	importacaoHandler := importacao.NewHandler(tabelaRepo, importacao.NewImportador(db), cfg.TempDir)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(rotaNaoEncontrada)
	r.MethodNotAllowedHandler = http.HandlerFunc(metodoNaoPermitido)
	api := r.PathPrefix(Prefixo).Subrouter()

	api.HandleFunc("/health", health(db)).Methods("GET")

	// Rotas de autenticação
	api.Handle("/auth/login", middleware.LimitarPorIP(cfg.HTTP.LoginLimitePorMinuto)(http.HandlerFunc(authHandler.Login))).Methods("POST")
	api.HandleFunc("/auth/registro", authHandler.Registro).Methods("POST")
	api.HandleFunc("/auth/perfil", gate.Proteger(authHandler.Perfil)).Methods("GET")
	api.HandleFunc("/auth/dashboard", gate.Proteger(authHandler.Dashboard)).Methods("GET")
	api.HandleFunc("/auth/alterar-senha", gate.Proteger(authHandler.AlterarSenha)).Methods("PUT")

	// Rotas de vendedores
	api.HandleFunc("/vendedores", vendedorHandler.Listar).Methods("GET")
	api.HandleFunc("/vendedores", vendedorHandler.Criar).Methods("POST")
	api.HandleFunc("/vendedores/{id}", vendedorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/vendedores/{id}", vendedorHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/vendedores/{id}", vendedorHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/vendedores/{id}/comissoes", tabelaHandler.ListarPorVendedor).Methods("GET")

	// Rotas de tabelas de comissão
	api.HandleFunc("/comissoes", tabelaHandler.Listar).Methods("GET")
	api.HandleFunc("/comissoes", tabelaHandler.Criar).Methods("POST")
	api.HandleFunc("/comissoes/{id}", tabelaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/comissoes/{id}", tabelaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/comissoes/{id}", tabelaHandler.Deletar).Methods("DELETE")

	// Rotas de vendas
	api.HandleFunc("/vendas", vendaHandler.Listar).Methods("GET")
	api.HandleFunc("/vendas", vendaHandler.Criar).Methods("POST")
	api.HandleFunc("/vendas/{id}", vendaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/vendas/{id}", vendaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/vendas/{id}", vendaHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/vendas/{id}/comissao-paga", vendaHandler.MarcarComissaoPaga).Methods("PATCH")
	api.HandleFunc("/relatorio/vendas", vendaHandler.Relatorio).Methods("GET")

	// Rotas de importação
	api.HandleFunc("/importacao/template", importacaoHandler.GerarTemplate).Methods("GET")
	api.HandleFunc("/importacao/template/download", importacaoHandler.BaixarTemplate).Methods("GET")
	api.HandleFunc("/importacao/vendas", importacaoHandler.ImportarVendas).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.CORSOrigens,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID, "Content-Disposition"},
		AllowCredentials: !permiteTodas(cfg.HTTP.CORSOrigens),
	})

	return middleware.Logging(logger)(middleware.Recuperar(c.Handler(r)))
}

func health(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			utils.ResponderFalha(w, r, err, "")
			return
		}
		utils.ResponderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func rotaNaoEncontrada(w http.ResponseWriter, r *http.Request) {
	utils.ResponderErro(w, http.StatusNotFound, "Rota não encontrada")
}

func metodoNaoPermitido(w http.ResponseWriter, r *http.Request) {
	utils.ResponderErro(w, http.StatusMethodNotAllowed, "Método não permitido")
}

func permiteTodas(origens []string) bool {
	for _, o := range origens {
		if o == "*" {
			return true
		}
	}
	return false
}
