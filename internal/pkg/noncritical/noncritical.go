// Package noncritical is the error policy for best-effort remote calls: claims,
// releases, ledger and journal writes. A failure is logged and swallowed; the
// caller's flow never changes because of it.
package noncritical

import "go.uber.org/zap"

// Log records err for op at warn level and reports whether the call succeeded.
func Log(log *zap.Logger, op string, err error, fields ...zap.Field) bool {
	if err == nil {
		return true
	}
	if log == nil {
		return false
	}
	fields = append(fields, zap.String("op", op), zap.Bool("non_critical", true), zap.Error(err))
	log.Warn("best-effort call failed", fields...)
	return false
}
