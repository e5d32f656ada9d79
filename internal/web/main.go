package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/config"
	fiberlog "github.com/orgdesk/orgdesk/internal/logger/adapter/fiber"
	"github.com/orgdesk/orgdesk/internal/web/control"
	"github.com/orgdesk/orgdesk/internal/web/handler"
	"github.com/orgdesk/orgdesk/internal/web/handler/dashboard"
	"github.com/orgdesk/orgdesk/internal/web/handler/login"
	"github.com/orgdesk/orgdesk/internal/web/handler/logout"
	"github.com/orgdesk/orgdesk/internal/web/handler/member"
	authmiddleware "github.com/orgdesk/orgdesk/internal/web/middleware/auth"
	"github.com/orgdesk/orgdesk/internal/web/session"
	"github.com/orgdesk/orgdesk/internal/web/visibility"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"
	// MetricsPath serves prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	s.alive.Store(true)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown && !s.cfg.DevMode {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers health checks: 200 while serving, 503 while shutting down.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// NewTemplateEngine returns the html engine with the template helpers registered.
func NewTemplateEngine(devMode bool) *html.Engine {
	httpFS := http.FS(assetDir("templates"))
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if devMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFuncMap(visibility.FuncMap())
	templateEngine.AddFuncMap(control.FuncMap())
	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	templateEngine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	return templateEngine
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) (*Service, error) {
	if cfg == nil || db == nil {
		return nil, handler.ErrNilACD
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          NewTemplateEngine(cfg.DevMode),
		},
	)

	service := &Service{
		cfg: cfg,
		App: app,
	}
	service.alive.Store(true)

	app.Use(fiberlog.New(fiberlog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		RoleOf: func(c *fiber.Ctx) string {
			if actor, _ := session.FromContext(c); actor != nil && actor.Role != nil {
				return actor.Role.Slug
			}

			return ""
		},
	}))

	// unauthenticated endpoints
	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root: http.FS(assetDir("static")),
			},
		),
	)

	app.Use(authmiddleware.New(authmiddleware.Config{
		Loader:       authmiddleware.DBLoader(db),
		LoadTimeout:  cfg.Webserver.Session.LoadTimeout,
		RedirectPath: cfg.Access.RedirectPath,
	}))

	// init handlers (they register their own routes with permission checks)
	handlers := []handler.Service{
		&login.Handler,
		&logout.Handler,
		&dashboard.Handler,
		&member.Handler,
	}
	for _, h := range handlers {
		if err := h.Init(app, cfg, db); err != nil {
			return nil, err
		}
	}

	// redirect root to the landing page
	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(cfg.Access.RedirectPath)
	})

	return service, nil
}
