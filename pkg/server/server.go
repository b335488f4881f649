package server

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/segmentio/ksuid"

	"oracle/pkg/converter"
	"oracle/pkg/entities"
	"oracle/pkg/inference"
	"oracle/pkg/prompt"
)

type Server struct {
	Echo       *echo.Echo
	Inferencer inference.Inferencer
	Prompts    *prompt.Builder
	Timeout    time.Duration

	books           converter.Converter[entities.Book]
	recommendations converter.Converter[entities.BookRecommendation]
	players         converter.Converter[entities.Player]
	achievements    converter.Converter[entities.Achievement]
}

// NewServer wires the routes. A zero timeout leaves request contexts unbounded.
func NewServer(inf inference.Inferencer, prompts *prompt.Builder, timeout time.Duration) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return ksuid.New().String() },
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	if timeout > 0 {
		e.Use(middleware.ContextTimeout(timeout))
	}

	s := &Server{
		Echo:       e,
		Inferencer: inf,
		Prompts:    prompts,
		Timeout:    timeout,
	}

	var err error
	if s.books, err = converter.NewDeclared[entities.Book](); err != nil {
		return nil, err
	}
	if s.recommendations, err = converter.NewDirect[entities.BookRecommendation](); err != nil {
		return nil, err
	}
	if s.players, err = converter.NewDeclared[entities.Player](); err != nil {
		return nil, err
	}
	if s.achievements, err = converter.NewDirect[entities.Achievement](); err != nil {
		return nil, err
	}

	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/healthz", s.handleGetHealth)

	// free text
	s.Echo.GET("/", s.handleGetRoot)
	s.Echo.GET("/cityInfo", s.handleGetCityInfo)
	s.Echo.GET("/movieDetails", s.handleGetMovieDetails)
	s.Echo.GET("/movies", s.handleGetMovieDetails)
	s.Echo.GET("/teamReport", s.handleGetTeamReport)

	// records
	s.Echo.GET("/book", s.handleGetBook)
	s.Echo.GET("/recommendations", s.handleGetRecommendations)
	s.Echo.GET("/player", s.handleGetPlayer)
	s.Echo.GET("/achievement/playerName", s.handleGetAchievements)
}

func (s *Server) Start(addr string) error {
	log.Info("server listening", "addr", addr, "timeout", s.Timeout)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")
	return s.Echo.Shutdown(ctx)
}
