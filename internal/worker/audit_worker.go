package worker

import (
	"github.com/dtechsoftwares/ecclesiapro/internal/service"
)

// StartAuditRecorder registers the audit trail handlers.
func StartAuditRecorder(recorder *service.AuditRecorder) {
	if recorder == nil {
		return
	}
	recorder.RegisterHandlers()
}
