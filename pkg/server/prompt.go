package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"oracle/pkg/prompt"
	"oracle/pkg/utils"
)

// queryParam returns a required, non-blank query parameter or a 400.
func queryParam(c echo.Context, name string) (string, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("missing query parameter %q", name))
	}
	return v, nil
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// render fills a prompt template. Failures are written as a 500 and returned
// as an echo.HTTPError so handlers can return them directly.
func (s *Server) render(c echo.Context, name string, params map[string]any) (string, error) {
	text, err := s.Prompts.Render(name, params)
	if err == nil {
		log.Debug("rendered prompt", "request_id", requestID(c), "template", name, "chars", len(text))
		return text, nil
	}

	log.Error("failed rendering prompt", "request_id", requestID(c), "template", name, "error", err)
	var missing *prompt.MissingParamError
	if errors.As(err, &missing) {
		return "", echo.NewHTTPError(http.StatusInternalServerError, utils.ErrJSON(missing.Error()))
	}
	return "", echo.NewHTTPError(http.StatusInternalServerError, utils.ErrJSON("failed preparing prompt"))
}
