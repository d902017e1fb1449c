// Package logging provides structured logging helpers for docsgate.
//
// All components log through log/slog. This package keeps attribute names
// consistent and makes sure credentials never reach the output:
//
//	logger := logging.WithTool(slog.Default(), "drive_move_file")
//	logger.Info("tool invoked",
//	    logging.Session(sessionID),
//	    logging.Status(logging.StatusSuccess))
//
// Session identifiers are hashed and OAuth tokens are reduced to a length
// marker before they are logged.
package logging
