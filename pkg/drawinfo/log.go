package drawinfo

import "go.uber.org/zap"

var log = zap.NewNop()

// SetLogger routes package diagnostics to l. Pass nil to silence them.
// Call it during setup, before meshes are shared between goroutines.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}
