package temporal

import (
	"fmt"

	sdklog "go.temporal.io/sdk/log"

	"newsgen/pkg/logx"
)

// logAdapter bridges the SDK's keyval logger onto logx.
type logAdapter struct {
	log logx.Logger
}

var _ sdklog.Logger = logAdapter{}

func newLogAdapter(log logx.Logger) sdklog.Logger {
	return logAdapter{log: log.With(logx.String("component", "temporal-sdk"))}
}

func (a logAdapter) Debug(msg string, keyvals ...any) { a.log.Debug(msg, fields(keyvals)...) }
func (a logAdapter) Info(msg string, keyvals ...any)  { a.log.Info(msg, fields(keyvals)...) }
func (a logAdapter) Warn(msg string, keyvals ...any)  { a.log.Warn(msg, fields(keyvals)...) }
func (a logAdapter) Error(msg string, keyvals ...any) { a.log.Error(msg, fields(keyvals)...) }

func fields(keyvals []any) []logx.Field {
	out := make([]logx.Field, 0, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if i+1 < len(keyvals) {
			out = append(out, logx.Any(key, keyvals[i+1]))
		} else {
			out = append(out, logx.String(key, ""))
		}
	}
	return out
}
