package daemon

import (
	"context"
	"dropdate/internal/logger"
	"dropdate/internal/metrics"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo      *echo.Echo
	state     *State
	scheduler *Scheduler
	addr      string
}

func NewServer(state *State, scheduler *Scheduler, addr string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:      e,
		state:     state,
		scheduler: scheduler,
		addr:      addr,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/status", s.handleStatus)
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

func (s *Server) Start() {
	go func() {
		logger.Log.Info("status server started",
			zap.String("addr", s.addr))

		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("status server error", zap.Error(err))
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(c echo.Context) error {
	resp := map[string]any{
		"runs": s.state.Runs(),
	}

	if s.scheduler != nil {
		resp["schedule"] = s.scheduler.Spec()
		resp["next_run"] = s.scheduler.Next()
	}

	if last, ok := s.state.Last(); ok {
		resp["last_run"] = last
	}

	return c.JSON(http.StatusOK, resp)
}
