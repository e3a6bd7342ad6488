package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/config"
	"storefront/internal/logging"
	mw "storefront/internal/middleware"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const bodyLimit = "1M"

// New builds the echo instance with the middleware every route shares.
func New(cfg config.Config, logger *log.Logger, obs mw.HTTPObserver) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = logger
	e.Validator = validator.New()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID, _ := c.Get(mw.CtxUserIDKey).(int64)
			f := logging.Fields{
				RequestID:  v.RequestID,
				UserID:     userID,
				Step:       v.Method + " " + v.URI,
				Status:     strconv.Itoa(v.Status),
				DurationMS: v.Latency.Milliseconds(),
				Error:      v.Error,
			}
			if v.Status >= http.StatusInternalServerError {
				logging.Error(logger, f)
			} else {
				logging.Info(logger, f)
			}
			return nil
		},
	}))
	if obs != nil {
		e.Use(mw.Metrics(obs))
	}
	return e
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, e *echo.Echo, addr string, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
