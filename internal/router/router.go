package router

import (
	"time"

	"parquepos/internal/config"
	"parquepos/internal/handler"
	"parquepos/internal/middleware"
	"parquepos/internal/repository"
	"parquepos/internal/service"
	"parquepos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	itemRepo := repository.NewItemRepository(db)
	metodoRepo := repository.NewMetodoPagamentoRepository(db)
	configuracaoRepo := repository.NewConfiguracaoRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	lancamentoRepo := repository.NewLancamentoRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	itemSvc := service.NewItemService(itemRepo)
	metodoSvc := service.NewMetodoPagamentoService(metodoRepo)
	tarifaSvc := service.NewTarifaService(configuracaoRepo, rdb)
	lancamentoSvc := service.NewLancamentoService(lancamentoRepo, itemRepo, metodoRepo, tarifaSvc)
	caixaSvc := service.NewCaixaService(caixaRepo, lancamentoRepo, metodoRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	itensH := handler.NewItensHandler(itemSvc)
	metodosH := handler.NewMetodosHandler(metodoSvc)
	tarifaH := handler.NewTarifaHandler(tarifaSvc)
	lancamentosH := handler.NewLancamentosHandler(lancamentoSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Perfis: operador, supervisor, administrador — declared per-endpoint.
		// Non-admin users additionally need the módulo in their capability set.
		lanc := v1.Group("/lancamentos",
			middleware.RequireRole("operador", "supervisor", "administrador"),
			middleware.RequirePermissao("lancamentos", ""))
		{
			lanc.POST("", lancamentosH.Criar)
			lanc.GET("", lancamentosH.Listar)
			lanc.GET("/:id", lancamentosH.Obter)
			lanc.PATCH("/:id/tempo", lancamentosH.AtualizarTempo)
			lanc.POST("/:id/pagar", lancamentosH.Pagar)
			lanc.POST("/:id/cancelar", lancamentosH.Cancelar)
		}

		// Caixa operations carry the assigned-caixa guard: a user bound to a
		// single caixa cannot operate another one.
		caixas := v1.Group("/caixas",
			middleware.RequireRole("operador", "supervisor", "administrador"),
			middleware.RequirePermissao("caixa", ""))
		{
			caixas.GET("", caixaH.Listar)
			caixas.POST("", middleware.RequireRole("administrador"), caixaH.Criar)
			caixas.POST("/:id/abrir", middleware.RequireCaixa(), caixaH.Abrir)
			caixas.POST("/:id/fechar", middleware.RequireCaixa(), caixaH.Fechar)
			caixas.POST("/:id/movimentos", middleware.RequireCaixa(), caixaH.RegistrarMovimento)
			caixas.GET("/:id/movimentos", middleware.RequireCaixa(), caixaH.ListarMovimentos)
			caixas.GET("/:id/relatorio", middleware.RequireCaixa(), caixaH.Relatorio)
		}

		// Cadastros
		v1.GET("/itens", middleware.RequireRole("operador", "supervisor", "administrador"), itensH.Listar)
		itens := v1.Group("/itens", middleware.RequireRole("supervisor", "administrador"))
		{
			itens.POST("", itensH.Criar)
			itens.PUT("/:id", itensH.Atualizar)
			itens.DELETE("/:id", itensH.Desativar)
		}

		v1.GET("/clientes", middleware.RequireRole("operador", "supervisor", "administrador"), clientesH.Listar)
		clientes := v1.Group("/clientes", middleware.RequireRole("operador", "supervisor", "administrador"))
		{
			clientes.POST("", clientesH.Criar)
			clientes.PUT("/:id", clientesH.Atualizar)
			clientes.DELETE("/:id", middleware.RequireRole("supervisor", "administrador"), clientesH.Desativar)
		}

		v1.GET("/metodos-pagamento", middleware.RequireRole("operador", "supervisor", "administrador"), metodosH.Listar)
		metodos := v1.Group("/metodos-pagamento", middleware.RequireRole("administrador"))
		{
			metodos.POST("", metodosH.Criar)
			metodos.DELETE("/:id", metodosH.Desativar)
		}

		v1.GET("/tarifa", middleware.RequireRole("operador", "supervisor", "administrador"), tarifaH.Obter)
		v1.PUT("/tarifa", middleware.RequireRole("administrador"), tarifaH.Atualizar)

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
