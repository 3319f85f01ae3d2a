package output

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level names accepted by --log, mapped onto zap levels. OFF silences the
// logger entirely.
var levelNames = map[string]zapcore.Level{
	"OFF":   zapcore.InvalidLevel,
	"FATAL": zapcore.FatalLevel,
	"ERROR": zapcore.ErrorLevel,
	"WARN":  zapcore.WarnLevel,
	"INFO":  zapcore.InfoLevel,
	"DEBUG": zapcore.DebugLevel,
}

// LevelNames returns the accepted --log values, sorted.
func LevelNames() []string {
	names := make([]string, 0, len(levelNames))
	for name := range levelNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewLogger builds a console zap logger on stderr at the named level.
func NewLogger(level string) (*zap.Logger, error) {
	zl, ok := levelNames[strings.ToUpper(level)]
	if !ok {
		return nil, fmt.Errorf("unknown log level %q (valid: %s)", level, strings.Join(LevelNames(), ", "))
	}
	if zl == zapcore.InvalidLevel {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.CallerKey = ""
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), nil
	}
	return logger, nil
}
