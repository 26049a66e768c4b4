// Package logger provides structured logging for dbfixtures using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewWithWriter(&cfg.Logging, "dbfixtures", os.Stderr).WithComponent("redis")
//	log.Info("keys truncated", logger.Fields("count", 3))
package logger
