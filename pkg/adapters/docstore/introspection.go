package docstore

import (
	"github.com/aretw0/introspection"
)

// ManagerState exposes internal state for observability. The DSN is
// deliberately absent: it may embed credentials.
type ManagerState struct {
	Opened bool `json:"opened"`
	Failed bool `json:"failed"`
}

// State implements introspection.Introspectable.
func (m *Manager) State() any {
	db, err := m.handle()
	return ManagerState{
		Opened: db != nil,
		Failed: err != nil,
	}
}

// ComponentType implements introspection.Component.
func (m *Manager) ComponentType() string {
	return "docstore"
}

var _ introspection.Introspectable = (*Manager)(nil)
var _ introspection.Component = (*Manager)(nil)
