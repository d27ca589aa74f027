package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/drawinfo/internal/config"
	"github.com/Faultbox/drawinfo/internal/logger"
	"github.com/Faultbox/drawinfo/pkg/drawinfo"
)

// printUploader reports buffer traffic instead of talking to a GPU.
type printUploader struct {
	w io.Writer
}

func (u printUploader) Upload(m drawinfo.Mesh) error {
	b := m.MeshBase()
	_, err := fmt.Fprintf(u.w, "upload  %q: %d vertices, %d indices\n", b.Name, b.VertexCount(), len(b.Indices))
	return err
}

func (u printUploader) Release(m drawinfo.Mesh) error {
	_, err := fmt.Fprintf(u.w, "release %q\n", m.MeshBase().Name)
	return err
}

// meshWatcher keeps one baked mesh in step with its document.
type meshWatcher struct {
	cfg     *config.Config
	path    string
	up      drawinfo.Uploader
	current drawinfo.Mesh
}

// reload rebuilds the mesh from disk and bakes its transform. The buffer
// state carries over so an already uploaded mesh becomes dirty.
func (mw *meshWatcher) reload() error {
	meshes, err := loadMeshes(mw.cfg, []string{mw.path})
	if err != nil {
		return err
	}
	next := meshes[0]
	drawinfo.ApplyTransform(next)

	if mw.current != nil {
		b := next.MeshBase()
		b.Tracker = mw.current.MeshBase().Tracker
		b.Tracker.MarkModified()
	}
	mw.current = next

	_, err = drawinfo.Sync(mw.up, mw.current)
	return err
}

func cmdWatch(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: meshtool watch <file>")
	}

	mw := &meshWatcher{cfg: cfg, path: filepath.Clean(args[0]), up: printUploader{w: os.Stdout}}
	if err := mw.reload(); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Editors often replace the file, so watch its directory.
	if err := w.Add(filepath.Dir(mw.path)); err != nil {
		return err
	}
	logger.Info("watching", zap.String("path", mw.path))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return drawinfo.Free(mw.up, mw.current)

		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != mw.path || e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if err := mw.reload(); err != nil {
				logger.Warn("reload failed", zap.String("path", mw.path), zap.Error(err))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}
