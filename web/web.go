// Package web provides the memo web server: routing, sessions, templates,
// localization and the background maintenance schedule.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/mhsanaei/memo/config"
	"github.com/mhsanaei/memo/database"
	"github.com/mhsanaei/memo/logger"
	"github.com/mhsanaei/memo/util/common"
	"github.com/mhsanaei/memo/util/random"
	"github.com/mhsanaei/memo/web/cache"
	"github.com/mhsanaei/memo/web/controller"
	"github.com/mhsanaei/memo/web/entity"
	"github.com/mhsanaei/memo/web/job"
	"github.com/mhsanaei/memo/web/locale"
	"github.com/mhsanaei/memo/web/middleware"
	"github.com/mhsanaei/memo/web/service"
	"github.com/mhsanaei/memo/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

const shutdownTimeout = 10 * time.Second

// Server represents the memo web server with its store, controllers and
// scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	dbConfig *config.DatabaseConfig
	store    database.Store
	redis    *cache.Redis

	index *controller.IndexController
	memo  *controller.MemoController

	loginLimiter *middleware.LoginRateLimiter

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// getHtmlTemplate parses the embedded page templates.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(htmlFS, "html/*.html")
}

func (s *Server) getSessionSecret() ([]byte, error) {
	secret := config.GetSessionSecret()
	if secret != "" {
		return []byte(secret), nil
	}
	if !config.IsDebug() {
		return nil, common.NewErrorf("MEMO_SESSION_SECRET must be set")
	}
	logger.Warning("MEMO_SESSION_SECRET is not set, using a random secret; sessions end on restart")
	return []byte(random.Seq(32)), nil
}

// newSessionStore returns the configured gin session store.
func (s *Server) newSessionStore() (sessions.Store, error) {
	secret, err := s.getSessionSecret()
	if err != nil {
		return nil, err
	}
	maxAge, err := config.GetSessionMaxAge()
	if err != nil {
		return nil, err
	}
	options := session.Options(maxAge * 60)

	var store sessions.Store
	switch config.GetSessionStore() {
	case config.SessionStoreRedis:
		if s.redis == nil {
			s.redis, err = cache.Open(s.ctx, config.GetRedisAddr())
			if err != nil {
				return nil, err
			}
			if s.redis.IsEmbedded() {
				logger.Warning("MEMO_REDIS_ADDR is not set, sessions are kept in an embedded redis and end on restart")
			}
		}
		store = cache.NewRedisStore(s.redis.Client(), secret)
	default:
		store = cookie.NewStore(secret)
	}
	store.Options(options)
	return store, nil
}

// initRouter initializes Gin, registers middleware, templates and
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}

	sessionStore, err := s.newSessionStore()
	if err != nil {
		return nil, err
	}
	sessionMaxAge, err := config.GetSessionMaxAge()
	if err != nil {
		return nil, err
	}
	loginRate, err := config.GetLoginRate()
	if err != nil {
		return nil, err
	}
	s.loginLimiter = middleware.NewLoginRateLimiter(loginRate)

	engine := gin.New()
	if err := engine.SetTrustedProxies(config.GetTrustedProxies()); err != nil {
		return nil, err
	}
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		gzip.Gzip(gzip.DefaultCompression),
		sessions.Sessions(session.Name, sessionStore),
		locale.LocalizerMiddleware(),
	)

	funcMap := template.FuncMap{
		"i18n": func(localizer *i18n.Localizer, key string, params ...string) string {
			return locale.I18n(localizer, key, params...)
		},
	}
	engine.SetFuncMap(funcMap)
	tpl, err := s.getHtmlTemplate(funcMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	userService := service.NewUserService(s.store)
	memoService := service.NewMemoService(s.store, userService)

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, userService, s.loginLimiter.Middleware(), sessionMaxAge)
	s.memo = controller.NewMemoController(g, memoService)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, entity.Msg{
			Success: false,
			Msg:     http.StatusText(http.StatusNotFound),
		})
	})

	return engine, nil
}

// startTask schedules the background maintenance jobs.
func (s *Server) startTask() {
	// the write-ahead log checkpoint only applies to SQLite
	if s.dbConfig == nil || s.dbConfig.IsPostgreSQL() {
		return
	}
	if cp, ok := s.store.(database.Checkpointer); ok {
		if _, err := s.cron.AddJob("@daily", job.NewCheckpointJob(cp)); err != nil {
			logger.Warning("add checkpoint job failed:", err)
		}
	}
}

// Start opens the store and starts serving HTTP and the cron scheduler.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.dbConfig, err = config.GetDatabaseConfig()
	if err != nil {
		return err
	}
	s.store, err = database.Open(s.ctx, s.dbConfig)
	if err != nil {
		return err
	}

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	port, err := config.GetPort()
	if err != nil {
		return err
	}
	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop shuts the server down and releases the store and redis.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}

	var errs []error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		errs = append(errs, s.httpServer.Shutdown(ctx))
	} else if s.listener != nil {
		errs = append(errs, s.listener.Close())
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	return common.Combine(errs...)
}
