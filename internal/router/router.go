package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"lavadero/internal/apierror"
	"lavadero/internal/config"
	"lavadero/internal/handler"
	"lavadero/internal/middleware"
	"lavadero/internal/repository"
	"lavadero/internal/service"

	sentrygin "github.com/getsentry/sentry-go/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil, in which case QR images are rendered on every request.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		// config.Load already validated TIMEZONE.
		loc = time.UTC
	}
	reloj := service.NewReloj(loc)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	if cfg.OtelEnabled {
		r.Use(otelgin.Middleware("lavadero"))
	}
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	if cfg.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Timeout(cfg.Timeout()))
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	lavadorRepo := repository.NewLavadorRepository(db)
	aseoRepo := repository.NewAseoRepository(db)
	entregaRepo := repository.NewEntregaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo)
	lavadorSvc := service.NewLavadorService(lavadorRepo, rdb, service.QRConfig{
		BaseURL:  cfg.PublicBaseURL,
		Path:     cfg.QRPath,
		CacheTTL: cfg.QRCacheTTL(),
	})
	aseoSvc := service.NewAseoService(aseoRepo, reloj)
	entregaSvc := service.NewEntregaService(entregaRepo, reloj)
	reporteSvc := service.NewReporteService(aseoRepo, entregaRepo, reloj)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	lavadoresH := handler.NewLavadoresHandler(lavadorSvc)
	aseoH := handler.NewAseoHandler(aseoSvc)
	entregasH := handler.NewEntregasHandler(entregaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/", handler.Root)
	r.GET("/health", handler.Health(db, rdb))

	r.POST("/login", middleware.LoginRateLimiter(cfg.LoginRateLimit), authH.Login)

	r.GET("/lavadores", lavadoresH.Listar)
	r.POST("/lavadores", lavadoresH.Crear)
	r.GET("/lavadores/:id/qr", lavadoresH.QR)

	r.POST("/aseo", aseoH.Registrar)
	r.POST("/entregas", entregasH.Registrar)

	r.GET("/reporte-aseo", reportesH.Aseo)
	r.GET("/reporte-aseo/export", reportesH.ExportarAseo)
	r.GET("/reporte-entregas", reportesH.Entregas)
	r.GET("/reporte-entregas/export", reportesH.ExportarEntregas)

	// Swagger UI only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Panel pages (aseo-qr.html and friends) live next to the API.
	r.NoRoute(staticFiles(cfg.PublicDir))

	return r
}

// staticFiles serves GET requests for existing files under dir; everything
// else gets the JSON 404 envelope.
func staticFiles(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if dir != "" && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) {
			clean := path.Clean("/" + c.Request.URL.Path)
			if !strings.HasSuffix(clean, "/") {
				full := filepath.Join(dir, filepath.FromSlash(clean))
				if info, err := os.Stat(full); err == nil && !info.IsDir() {
					c.File(full)
					return
				}
			}
		}
		c.JSON(http.StatusNotFound, apierror.New("Ruta no encontrada"))
	}
}
