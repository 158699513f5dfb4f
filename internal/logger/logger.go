// Package logger 提供基于 go-logging 的分级日志输出。
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const (
	moduleName = "quillpost"
	timeFormat = "2006/01/02 15:04:05"
)

var logger = newLogger(os.Stderr, logging.INFO)

// ParseLevel 将配置中的级别名称转换为 go-logging 级别，未知名称返回错误。
func ParseLevel(name string) (logging.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return logging.INFO, nil
	case "warn":
		return logging.WARNING, nil
	}
	level, err := logging.LogLevel(strings.ToUpper(strings.TrimSpace(name)))
	if err != nil {
		return logging.INFO, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// InitLogger 以指定级别将日志输出到标准错误。
func InitLogger(level logging.Level) {
	logger = newLogger(os.Stderr, level)
}

// SetOutput 将日志重定向到任意 writer，主要用于测试。
func SetOutput(w io.Writer, level logging.Level) {
	logger = newLogger(w, level)
}

func newLogger(w io.Writer, level logging.Level) *logging.Logger {
	l := logging.MustGetLogger(moduleName)
	backend := logging.NewBackendFormatter(
		logging.NewLogBackend(w, "", 0),
		logging.MustStringFormatter(`%{time:`+timeFormat+`} %{level} - %{message}`),
	)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(level, moduleName)
	l.SetBackend(leveled)
	return l
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Noticef(format string, args ...any) {
	logger.Noticef(format, args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
