package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"oracle/pkg/inference"
	"oracle/pkg/prompt"
	"oracle/pkg/utils"
)

const noResponse = "No response from the server"

func (s *Server) handleGetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "Oracle Inference API",
		"status":  "ok",
	})
}

// GET /?message=
func (s *Server) handleGetRoot(c echo.Context) error {
	message, err := queryParam(c, "message")
	if err != nil {
		return err
	}
	return s.respondText(c, "", message)
}

// GET /cityInfo?cityName=
func (s *Server) handleGetCityInfo(c echo.Context) error {
	city, err := queryParam(c, "cityName")
	if err != nil {
		return err
	}
	text, err := s.render(c, prompt.CityInfo, map[string]any{"cityName": city})
	if err != nil {
		return err
	}
	return s.respondText(c, "", text)
}

// GET /movieDetails?title= and GET /movies?title=
func (s *Server) handleGetMovieDetails(c echo.Context) error {
	title, err := queryParam(c, "title")
	if err != nil {
		return err
	}
	system, err := s.Prompts.Text(prompt.MovieSystem)
	if err != nil {
		log.Error("failed loading system prompt", "request_id", requestID(c), "error", err)
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON("failed preparing prompt"))
	}
	text, err := s.render(c, prompt.MovieDetails, map[string]any{"title": title})
	if err != nil {
		return err
	}
	return s.respondText(c, system, text)
}

// GET /teamReport?teamName=
func (s *Server) handleGetTeamReport(c echo.Context) error {
	team, err := queryParam(c, "teamName")
	if err != nil {
		return err
	}
	text, err := s.render(c, prompt.TeamReport, map[string]any{"teamName": team})
	if err != nil {
		return err
	}
	return s.respondText(c, "", text)
}

func (s *Server) respondText(c echo.Context, system, user string) error {
	id := requestID(c)
	out, err := s.Inferencer.Infer(c.Request().Context(), nil, system, user)
	if err == nil {
		out = strings.TrimSpace(utils.StripThinking(out))
		if out == "" {
			err = inference.ErrNoResponse
		}
	}

	switch {
	case errors.Is(err, inference.ErrNoResponse):
		log.Warn("model returned no response", "request_id", id, "path", c.Path())
		return c.String(http.StatusOK, noResponse)
	case err != nil:
		log.Error("inference failed", "request_id", id, "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON("inference failed"))
	}

	log.Debug("text response", "request_id", id, "chars", len(out))
	return c.String(http.StatusOK, out)
}
