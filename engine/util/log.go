package util

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
)

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogAll

var logger = stdlog.New(os.Stderr, "", stdlog.LstdFlags|stdlog.Lmicroseconds)

type LogLevel int

const (
	LogLevelError LogLevel = iota + 1
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

type LogCategory int

const (
	LogVoxel LogCategory = 1 << iota
	LogNetwork
	LogPhysics
	LogSystem
	LogGameState

	LogAll = LogVoxel | LogNetwork | LogPhysics | LogSystem | LogGameState
)

var categoryNames = map[string]LogCategory{
	"voxel":     LogVoxel,
	"network":   LogNetwork,
	"physics":   LogPhysics,
	"system":    LogSystem,
	"gamestate": LogGameState,
	"all":       LogAll,
}

var levelNames = map[string]LogLevel{
	"error":   LogLevelError,
	"warning": LogLevelWarning,
	"info":    LogLevelInfo,
	"debug":   LogLevelDebug,
}

// SetLogOutput redirects all categories, e.g. into a buffer during tests.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

func ParseLogLevel(name string) (LogLevel, bool) {
	lvl, ok := levelNames[name]
	return lvl, ok
}

// ParseLogCategories ORs together the named categories. Unknown names are
// reported back so the caller can reject them.
func ParseLogCategories(names []string) (LogCategory, []string) {
	var mask LogCategory
	var unknown []string
	for _, name := range names {
		cat, ok := categoryNames[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		mask |= cat
	}
	return mask, unknown
}

func IsLogEnabled(cat LogCategory, lvl LogLevel) bool {
	return lvl <= GLOBAL_LOG_LEVEL && GLOBAL_LOG_CATEGORIES&cat != 0
}

func log(cat LogCategory, lvl LogLevel, format string, args ...interface{}) {
	if !IsLogEnabled(cat, lvl) {
		return
	}
	logger.Output(3, fmt.Sprintf(format, args...))
}

func LogVoxelInfo(format string, args ...interface{}) {
	log(LogVoxel, LogLevelInfo, format, args...)
}

func LogVoxelDebug(format string, args ...interface{}) {
	log(LogVoxel, LogLevelDebug, format, args...)
}

func LogNetworkInfo(format string, args ...interface{}) {
	log(LogNetwork, LogLevelInfo, format, args...)
}

func LogNetworkDebug(format string, args ...interface{}) {
	log(LogNetwork, LogLevelDebug, format, args...)
}

func LogNetworkWarning(format string, args ...interface{}) {
	log(LogNetwork, LogLevelWarning, format, args...)
}

func LogNetworkError(format string, args ...interface{}) {
	log(LogNetwork, LogLevelError, format, args...)
}

func LogPhysicsDebug(format string, args ...interface{}) {
	log(LogPhysics, LogLevelDebug, format, args...)
}

func LogSystemInfo(format string, args ...interface{}) {
	log(LogSystem, LogLevelInfo, format, args...)
}

func LogSystemDebug(format string, args ...interface{}) {
	log(LogSystem, LogLevelDebug, format, args...)
}

func LogSystemError(format string, args ...interface{}) {
	log(LogSystem, LogLevelError, format, args...)
}

func LogGameInfo(format string, args ...interface{}) {
	log(LogGameState, LogLevelInfo, format, args...)
}

func LogGameDebug(format string, args ...interface{}) {
	log(LogGameState, LogLevelDebug, format, args...)
}

func LogGameError(format string, args ...interface{}) {
	log(LogGameState, LogLevelError, format, args...)
}
