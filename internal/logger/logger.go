// Package logger 建立服務共用的 zerolog logger
package logger

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// New 回傳帶時間戳的 logger；level 為空時使用 info
func New(level string, out io.Writer) (zerolog.Logger, error) {
	if level == "" {
		level = zerolog.InfoLevel.String()
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
