package logger

import (
	"os"

	"go.uber.org/zap"
)

var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// Init builds the process-wide loggers. APP_ENV=production switches to the
// JSON production config.
func Init() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	SLog = Log.Sugar()
}

func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
