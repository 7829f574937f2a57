// Package service contains business logic and integrations backing HTTP handlers.
package service

import "log/slog"

// BaseService provides common dependencies for service types.
type BaseService struct {
	logger *slog.Logger
}

// logFailure records err at error level and returns it unchanged.
func (b *BaseService) logFailure(msg string, err error, args ...any) error {
	b.logger.Error(msg, append(args, "err", err)...)
	return err
}
