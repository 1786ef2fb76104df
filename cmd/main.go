package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/youngemp/comissoes-api/internal/aprovacao"
	"github.com/youngemp/comissoes-api/internal/auth"
	"github.com/youngemp/comissoes-api/internal/comissao"
	"github.com/youngemp/comissoes-api/internal/config"
	"github.com/youngemp/comissoes-api/internal/contrato"
	"github.com/youngemp/comissoes-api/internal/corretor"
	"github.com/youngemp/comissoes-api/internal/empreendimento"
	"github.com/youngemp/comissoes-api/internal/gatilho"
	"github.com/youngemp/comissoes-api/internal/itbi"
	"github.com/youngemp/comissoes-api/internal/regragatilho"
	"github.com/youngemp/comissoes-api/internal/relatorio"
	"github.com/youngemp/comissoes-api/internal/sincronizacao"
	"github.com/youngemp/comissoes-api/internal/usuario"
	"github.com/youngemp/comissoes-api/internal/utils/db"
	"github.com/youngemp/comissoes-api/internal/valorpago"
	"gorm.io/gorm"
)

func migrar(database *gorm.DB) error {
	for _, m := range []func(*gorm.DB) error{
		usuario.Migrate,
		empreendimento.Migrate,
		contrato.Migrate,
		corretor.Migrate,
		comissao.Migrate,
		regragatilho.Migrate,
		aprovacao.Migrate,
		sincronizacao.Migrate,
		itbi.Migrate,
		valorpago.Migrate,
	} {
		if err := m(database); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	godotenv.Load()
	log := config.GetLogger()

	database, err := db.GetDB()
	if err != nil {
		log.WithError(err).Fatal("erro ao conectar no banco")
	}

	if err := migrar(database); err != nil {
		log.WithError(err).Fatal("erro no AutoMigrate")
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(database)
	corretorHandler := corretor.NewHandler(database)
	empreendimentoHandler := empreendimento.NewHandler(database)
	contratoHandler := contrato.NewHandler(database)
	comissaoHandler := comissao.NewHandler(database)
	regraHandler := regragatilho.NewHandler(database)
	gatilhoHandler := gatilho.NewHandler(database)
	aprovacaoHandler := aprovacao.NewHandler(database)
	sincronizacaoHandler := sincronizacao.NewHandler(database)
	relatorioHandler := relatorio.NewHandler(database)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/corretores/login", corretorHandler.LoginCorretor).Methods("POST")
	r.HandleFunc("/corretores/cadastro", corretorHandler.CadastrarAcesso).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Comissões (painel com gatilho calculado)
	api.HandleFunc("/comissoes", gatilhoHandler.ListarComissoes).Methods("GET")
	api.HandleFunc("/comissoes/status-parcela", comissaoHandler.ListarStatusParcela).Methods("GET")
	api.HandleFunc("/comissoes/{id}/regra", comissaoHandler.AtualizarRegra).Methods("PUT")
	api.HandleFunc("/comissoes/{id}/historico", aprovacaoHandler.ListarHistorico).Methods("GET")

	// Workflow de aprovação
	api.HandleFunc("/aprovacao/enviar", aprovacaoHandler.Enviar).Methods("POST")
	api.HandleFunc("/aprovacao/aprovar", aprovacaoHandler.Aprovar).Methods("POST")
	api.HandleFunc("/aprovacao/rejeitar", aprovacaoHandler.Rejeitar).Methods("POST")
	api.HandleFunc("/aprovacao/pendentes", aprovacaoHandler.ListarPendentesAprovacao).Methods("GET")

	// Contratos e gatilhos
	api.HandleFunc("/contratos", contratoHandler.ListarContratos).Methods("GET")
	api.HandleFunc("/contratos/info", gatilhoHandler.InfoContrato).Methods("GET")
	api.HandleFunc("/contratos/busca-por-lote", gatilhoHandler.BuscaPorLote).Methods("POST")

	// Entidades sincronizadas
	api.HandleFunc("/empreendimentos", empreendimentoHandler.ListarEmpreendimentos).Methods("GET")
	api.HandleFunc("/corretores", corretorHandler.ListarCorretores).Methods("GET")
	api.HandleFunc("/corretores/documento/{documento}", corretorHandler.BuscarPorDocumento).Methods("GET")
	api.HandleFunc("/corretores/{id}", corretorHandler.BuscarPorID).Methods("GET")

	// Regras de gatilho
	api.HandleFunc("/regras", regraHandler.ListarRegras).Methods("GET")

	// Relatórios
	api.HandleFunc("/relatorios/resumo", relatorioHandler.Resumo).Methods("GET")

	// Conta própria
	api.HandleFunc("/usuarios/senha", usuarioHandler.TrocarSenha).Methods("PUT")

	// Sincronização
	api.HandleFunc("/sincronizacao", sincronizacaoHandler.Sincronizar).Methods("POST")
	api.HandleFunc("/sincronizacao/comissoes", sincronizacaoHandler.SincronizarComissoes).Methods("POST")
	api.HandleFunc("/sincronizacao/logs", sincronizacaoHandler.ListarLogs).Methods("GET")
	api.HandleFunc("/sincronizacao/ultima", sincronizacaoHandler.UltimaExecucao).Methods("GET")

	// Rotas administrativas
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/usuarios", usuarioHandler.CriarUsuario).Methods("POST")
	admin.HandleFunc("/usuarios", usuarioHandler.ListarUsuarios).Methods("GET")
	admin.HandleFunc("/usuarios/{id}", usuarioHandler.AtualizarUsuario).Methods("PUT")
	admin.HandleFunc("/usuarios/{id}", usuarioHandler.DesativarUsuario).Methods("DELETE")
	admin.HandleFunc("/regras", regraHandler.CriarRegra).Methods("POST")
	admin.HandleFunc("/regras/{id}", regraHandler.AtualizarRegra).Methods("PUT")
	admin.HandleFunc("/regras/{id}", regraHandler.DesativarRegra).Methods("DELETE")
	admin.HandleFunc("/comissoes/{id}", comissaoHandler.DeletarComissao).Methods("DELETE")
	admin.HandleFunc("/limpeza/duplicadas", sincronizacaoHandler.LimparDuplicadas).Methods("POST")
	admin.HandleFunc("/limpeza/duplicadas-status", sincronizacaoHandler.LimparDuplicadasPorStatus).Methods("POST")
	admin.HandleFunc("/limpeza/canceladas", sincronizacaoHandler.LimparCanceladas).Methods("POST")
	admin.HandleFunc("/limpeza/orfas", sincronizacaoHandler.MarcarOrfas).Methods("POST")
	admin.HandleFunc("/limpeza/reverter-pendentes", sincronizacaoHandler.ReverterPendentes).Methods("POST")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	log.Info(fmt.Sprintf("Servidor rodando em http://localhost:%s", porta))
	if err := http.ListenAndServe(":"+porta, c.Handler(r)); err != nil {
		log.WithError(err).Fatal("servidor encerrado")
	}
}
