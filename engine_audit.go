package authcache

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventResolveSuccess    = "resolve_success"
	auditEventResolveRejected   = "resolve_rejected"
	auditEventMissingCredential = "missing_credential"
	auditEventCacheInvalidate   = "cache_invalidate"
)

// AuditErrorCode defines a public type used by authcache APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrMissingCredential AuditErrorCode = "missing_credential"
	auditErrInvalidCredential AuditErrorCode = "invalid_credential"
	auditErrStoreUnavailable  AuditErrorCode = "store_unavailable"
	auditErrInternal          AuditErrorCode = "internal_error"
)

func auditErrorCode(err error) AuditErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return auditErrMissingCredential
	case errors.Is(err, ErrInvalidCredential):
		return auditErrInvalidCredential
	default:
		return auditErrInternal
	}
}

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	subject string,
	cacheKey string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		EventID:   newAuditEventID(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Subject:   subject,
		CacheKey:  cacheKey,
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}
