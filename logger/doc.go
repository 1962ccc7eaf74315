// Package logger is the zerolog-backed structured logger shared by every
// pipey package.
//
// A process installs one global logger with Init; packages derive
// component loggers from it and attach fields as maps:
//
//	log := logger.WithComponent("pipeline")
//	log.Debug("pipeline applied", logger.Fields(logger.FieldStages, 4))
//
// Console output tags each line with the service and level, for example
// "[PIP][INF]". Color is used only when writing to a terminal.
package logger
