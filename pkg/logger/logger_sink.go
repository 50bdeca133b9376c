package logger

import (
	"fmt"

	"idproof/pkg/utilities/timeutil"

	"github.com/rs/zerolog"
)

func AddSinkToLoggerInstance(loggerInstance *Logger, sinkFunction func(string, zerolog.Level, timeutil.TimeUTC)) {
	loggerInstance.sink = sinkFunction
}

func (l *Logger) activateSinkFormatted(format string, level zerolog.Level, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.activateSink(msg, level)
}

func (l *Logger) activateSink(msg string, level zerolog.Level) {
	if l.sink != nil {
		l.sink(msg, level, timeutil.NowUTC())
	}
}
