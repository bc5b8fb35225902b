package global

import (
	"go.uber.org/zap"
)

var Logger *zap.Logger

func GetLogger() *zap.Logger {
	return Logger
}
