package main

import (
	"fmt"
	"time"
)

type Config struct {
	BufferSize                int           `env:"BUFFER_SIZE,required=true"`
	ConnectionBufferSize      int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	SinkTimeout               time.Duration `env:"SINK_TIMEOUT,required=true"`
	RestartInterval           time.Duration `env:"RESTART_INTERVAL,required=true"`
	MetricInterval            time.Duration `env:"METRIC_INTERVAL,required=true"`
	ModerationCharReplacement string        `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
	LogLevel                  string        `env:"LOG_LEVEL,required=true"`
	Host                      string        `env:"HOST,default=localhost"`
	Port                      int           `env:"PORT,default=8080"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
