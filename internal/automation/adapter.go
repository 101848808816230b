package automation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/applylikeprince/backend/internal/models"
)

// Adapter performs the platform-specific submission steps. Implementations
// return the textual payload that was (or would have been) submitted, for
// the audit trail, or an error the orchestrator maps to FAILED.
type Adapter interface {
	Name() string
	Submit(ctx context.Context, session Session, app *models.JobApplication, resume *models.Resume) (string, error)
}

// Registry resolves adapters by canonical platform name. Unknown names
// fall back to the generic adapter so freshly onboarded platforms work
// before a dedicated adapter exists.
type Registry struct {
	adapters map[string]Adapter
	fallback Adapter
}

func NewRegistry(log *zap.Logger) *Registry {
	r := &Registry{
		adapters: make(map[string]Adapter),
		fallback: &genericAdapter{log: log},
	}
	r.Register(&linkedinAdapter{log: log})
	r.Register(&hirectAdapter{log: log})
	r.Register(&cutshortAdapter{log: log})
	return r
}

func (r *Registry) Register(a Adapter) {
	r.adapters[strings.ToLower(a.Name())] = a
}

// Resolve is case-insensitive and never fails.
func (r *Registry) Resolve(name string) Adapter {
	if a, ok := r.adapters[strings.ToLower(name)]; ok {
		return a
	}
	return r.fallback
}
