package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"oracle/pkg/converter"
	"oracle/pkg/prompt"
	"oracle/pkg/utils"
)

const defaultRecommendations = 5

// GET /book?title=
func (s *Server) handleGetBook(c echo.Context) error {
	title, err := queryParam(c, "title")
	if err != nil {
		return err
	}
	return respondRecords(s, c, s.books, prompt.Book, map[string]any{"title": title})
}

// GET /recommendations?bookTitle=&count=
func (s *Server) handleGetRecommendations(c echo.Context) error {
	title, err := queryParam(c, "bookTitle")
	if err != nil {
		return err
	}

	count := defaultRecommendations
	if v := c.QueryParam("count"); v != "" {
		count, err = strconv.Atoi(v)
		if err != nil || count <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("count must be a positive integer, got %q", v))
		}
	}

	return respondRecords(s, c, s.recommendations, prompt.Recommendations, map[string]any{
		"bookTitle": title,
		"count":     count,
	})
}

// GET /player?name=
func (s *Server) handleGetPlayer(c echo.Context) error {
	name, err := queryParam(c, "name")
	if err != nil {
		return err
	}
	return respondRecords(s, c, s.players, prompt.Player, map[string]any{"name": name})
}

// GET /achievement/playerName?playerName=
func (s *Server) handleGetAchievements(c echo.Context) error {
	name, err := queryParam(c, "playerName")
	if err != nil {
		return err
	}
	return respondRecords(s, c, s.achievements, prompt.Achievements, map[string]any{"playerName": name})
}

// respondRecords renders the template with the converter's format hint, calls
// the model and writes 200 with the records, 204, or 500.
func respondRecords[T any](s *Server, c echo.Context, conv converter.Converter[T], template string, params map[string]any) error {
	id := requestID(c)
	params["format"] = conv.Format()

	text, err := s.render(c, template, params)
	if err != nil {
		return err
	}

	records, outcome, err := converter.Call(c.Request().Context(), conv, s.Inferencer, nil, "", text)
	switch outcome {
	case converter.OK:
		log.Info("records converted", "request_id", id, "strategy", conv.Strategy(), "target", conv.Schema().Name, "records", len(records))
		return c.JSON(outcome.Status(), records)
	case converter.Empty:
		if err != nil {
			log.Warn("empty result", "request_id", id, "strategy", conv.Strategy(), "target", conv.Schema().Name, "error", err)
		} else {
			log.Warn("empty result", "request_id", id, "strategy", conv.Strategy(), "target", conv.Schema().Name)
		}
		return c.NoContent(outcome.Status())
	default:
		log.Error("structured call failed", "request_id", id, "strategy", conv.Strategy(), "target", conv.Schema().Name, "error", err)
		var convErr *converter.ConversionError
		if errors.As(err, &convErr) {
			log.Debug("unconvertible model output", "request_id", id, "output", utils.LimitStr(convErr.Content, 1024))
			return c.JSON(outcome.Status(), utils.ErrJSON("model output did not match "+convErr.Target))
		}
		return c.JSON(outcome.Status(), utils.ErrJSON("inference failed"))
	}
}
