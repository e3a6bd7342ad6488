package logging

import (
	"io"
	"os"

	"github.com/labstack/gommon/log"
)

// Fields is the structured payload of one log line. Zero values are omitted.
type Fields struct {
	RequestID  string
	UserID     int64
	CartID     int64
	OrderID    int64
	Step       string
	Status     string
	DurationMS int64
	Message    string
	Error      error
}

const header = `{"time":"${time_rfc3339_nano}","level":"${level}","service":"${prefix}"}`

// New returns a JSON logger; it also satisfies echo.Logger.
func New(service string, level string) *log.Logger {
	return NewWithOutput(service, level, os.Stdout)
}

func NewWithOutput(service string, level string, w io.Writer) *log.Logger {
	l := log.New(service)
	l.SetHeader(header)
	l.SetOutput(w)
	l.SetLevel(ParseLevel(level))
	return l
}

func ParseLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

func (f Fields) JSON() log.JSON {
	j := log.JSON{}
	if f.RequestID != "" {
		j["request_id"] = f.RequestID
	}
	if f.UserID != 0 {
		j["user_id"] = f.UserID
	}
	if f.CartID != 0 {
		j["cart_id"] = f.CartID
	}
	if f.OrderID != 0 {
		j["order_id"] = f.OrderID
	}
	if f.Step != "" {
		j["step"] = f.Step
	}
	if f.Status != "" {
		j["status"] = f.Status
	}
	if f.DurationMS != 0 {
		j["duration_ms"] = f.DurationMS
	}
	if f.Message != "" {
		j["message"] = f.Message
	}
	if f.Error != nil {
		j["error"] = f.Error.Error()
	}
	return j
}

func Info(l *log.Logger, f Fields) {
	l.Infoj(f.JSON())
}

func Warn(l *log.Logger, f Fields) {
	l.Warnj(f.JSON())
}

func Error(l *log.Logger, f Fields) {
	l.Errorj(f.JSON())
}
