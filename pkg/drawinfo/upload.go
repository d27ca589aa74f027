package drawinfo

import (
	"fmt"

	"go.uber.org/zap"
)

// Uploader owns GPU buffers. Implementations live with the renderer.
type Uploader interface {
	Upload(m Mesh) error
	Release(m Mesh) error
}

// Sync uploads every mesh that has no GPU copy or whose copy is stale, and
// marks it buffered. It stops at the first failed upload; meshes before it
// stay buffered.
func Sync(u Uploader, meshes ...Mesh) (int, error) {
	uploaded := 0
	for _, m := range meshes {
		b := m.MeshBase()
		if b.Tracker.HasBuffer() && !b.Tracker.NeedsRebuffer() {
			continue
		}
		if err := u.Upload(m); err != nil {
			return uploaded, fmt.Errorf("uploading mesh %d (%q): %w", b.ID, b.Name, err)
		}
		b.Tracker.MarkBuffered()
		uploaded++
	}
	if uploaded > 0 {
		log.Debug("synced meshes", zap.Int("uploaded", uploaded), zap.Int("total", len(meshes)))
	}
	return uploaded, nil
}

// Free releases the GPU copy of every buffered mesh and marks it freed.
func Free(u Uploader, meshes ...Mesh) error {
	for _, m := range meshes {
		b := m.MeshBase()
		if !b.Tracker.HasBuffer() {
			continue
		}
		if err := u.Release(m); err != nil {
			return fmt.Errorf("releasing mesh %d (%q): %w", b.ID, b.Name, err)
		}
		b.Tracker.MarkFreed()
	}
	return nil
}
