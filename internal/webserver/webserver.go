// Package webserver owns the echo instance: middleware, validation and
// JSON serialization. Handlers are registered by the api package.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/warehub/warehub/config"
	"go.uber.org/zap"
)

type WebServer struct {
	cfg  *config.AppConfig
	root *echo.Echo
}

// CustomValidator adapts go-playground/validator to echo's Validator hook.
type CustomValidator struct {
	validate *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

var stdjson = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONSerializer swaps echo's default serializer for jsoniter.
type JSONSerializer struct{}

func (JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := stdjson.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := stdjson.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

func New(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Web.Debug
	e.Logger.SetLevel(log.ERROR)
	e.JSONSerializer = JSONSerializer{}
	e.Validator = &CustomValidator{validate: validator.New()}
	e.Use(middleware.Recover())
	e.Use(ZapLogger())
	return &WebServer{cfg: cfg, root: e}
}

// Echo exposes the underlying router for route registration and tests.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// ZapLogger logs one line per request through the global zap logger.
func ZapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			zap.L().Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}

func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.S().Infof("Starting web server %s", addr)
	return s.root.Start(addr)
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}
