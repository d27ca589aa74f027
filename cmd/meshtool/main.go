// meshtool is a CLI utility for inspecting and baking mesh documents.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/drawinfo/internal/config"
	"github.com/Faultbox/drawinfo/internal/logger"
	"github.com/Faultbox/drawinfo/internal/meshfile"
	"github.com/Faultbox/drawinfo/pkg/drawinfo"
	"github.com/Faultbox/drawinfo/pkg/math"
	"github.com/Faultbox/drawinfo/pkg/uid"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	drawinfo.SetLogger(logger.Named("drawinfo"))

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		err = cmdInfo(cfg, args)
	case "apply", "bake":
		err = cmdApply(cfg, args)
	case "watch":
		err = cmdWatch(cfg, args)
	case "cube":
		err = cmdCube(args)
	case "config":
		err = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - mesh document utility

Usage:
  meshtool [flags] <command> [options]

Commands:
  info <file>...                         Show mesh information
  apply [-o dir] [-renumber] <file>...   Bake pending transforms into positions
  watch <file>                           Re-bake and re-upload on every change
  cube [-size n] [-name s]               Emit a unit cube document
  config [output]                        Write the effective configuration

Flags:
  -config <path>   Config file (.yaml or .toml)
  -debug           Enable debug logging
  -workers <n>     Concurrent mesh workers
  -arity <n>       Indices per primitive when a document omits it
  -log <path>      Write logs to this file

Examples:
  meshtool info cube.yaml
  meshtool apply -o baked/ a.yaml b.yaml
  meshtool cube -size 2 > cube.yaml
  meshtool config ~/.config/meshtool/config.toml`)
}

func loadMeshes(cfg *config.Config, paths []string) ([]drawinfo.Mesh, error) {
	meshes := make([]drawinfo.Mesh, 0, len(paths))
	for _, path := range paths {
		doc, err := meshfile.Load(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		m, err := doc.Mesh(drawinfo.WithArity(cfg.Mesh.PrimitiveArity))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("loaded mesh", zap.String("path", path), zap.String("mesh", fmt.Sprint(m)))
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: meshtool info <file>...")
	}

	meshes, err := loadMeshes(cfg, args)
	if err != nil {
		return err
	}

	for i, m := range meshes {
		if cfg.Output.Format == "yaml" {
			if i > 0 {
				fmt.Println("---")
			}
			if err := meshfile.Encode(os.Stdout, m); err != nil {
				return err
			}
			continue
		}

		b := m.MeshBase()
		fmt.Printf("File:       %s\n", args[i])
		fmt.Printf("Mesh:       %v\n", m)
		fmt.Printf("Vertices:   %d\n", b.VertexCount())
		fmt.Printf("Primitives: %d (arity %d)\n", len(b.Indices)/b.Arity, b.Arity)
		if lo, hi, ok := drawinfo.Bounds(m); ok {
			fmt.Printf("Bounds:     %v .. %v\n", lo, hi)
		}
		fmt.Printf("Pending:    %v\n", b.Transform)
		fmt.Println()
	}
	return nil
}

func cmdApply(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	outDir := fs.String("o", "", "Write baked documents to this directory")
	renumber := fs.Bool("renumber", false, "Assign fresh ids in input order")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: meshtool apply [-o dir] [-renumber] <file>...")
	}

	meshes, err := loadMeshes(cfg, fs.Args())
	if err != nil {
		return err
	}

	if *renumber {
		renumberMeshes(meshes)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := drawinfo.ApplyTransformAll(ctx, meshes, cfg.Mesh.Workers); err != nil {
		return err
	}
	logger.Info("transforms applied", zap.Int("meshes", len(meshes)), zap.Int("workers", cfg.Mesh.Workers))

	if *outDir == "" {
		for i, m := range meshes {
			if i > 0 {
				fmt.Println("---")
			}
			if err := meshfile.Encode(os.Stdout, m); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return err
	}
	bar := progressbar.NewOptions(len(meshes),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("writing"),
	)
	defer bar.Close()

	for i, m := range meshes {
		out := filepath.Join(*outDir, filepath.Base(fs.Arg(i)))
		if err := writeMesh(out, m); err != nil {
			return fmt.Errorf("%s: %w", out, err)
		}
		logger.Debug("wrote mesh", zap.String("from", fs.Arg(i)), zap.String("to", out))
		bar.Add(1)
	}
	return nil
}

// renumberMeshes assigns ids 1..n in input order. Id 0 goes to the
// enclosing group so no mesh shares it.
func renumberMeshes(meshes []drawinfo.Mesh) {
	g := drawinfo.NewGroup(drawinfo.NoID, meshes...)
	g.RegenerateIDs(uid.New(), uid.NewFrom(1))
}

func writeMesh(path string, m drawinfo.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := meshfile.Encode(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdCube(args []string) error {
	fs := flag.NewFlagSet("cube", flag.ExitOnError)
	size := fs.Float64("size", 1, "Edge length, stored as a pending scale")
	name := fs.String("name", "cube", "Mesh name")
	fs.Parse(args)

	m, err := unitCube(*name)
	if err != nil {
		return err
	}
	if *size != 1 {
		s := float32(*size)
		m.Transform.SetScale(math.Vec3{X: s, Y: s, Z: s})
	}
	return meshfile.Encode(os.Stdout, m)
}

// unitCube spans [0,1] on every axis and is colored by position.
func unitCube(name string) (*drawinfo.IVPColor, error) {
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	indices := []uint32{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	}
	colors := append([]math.Vec3(nil), positions...)
	return drawinfo.NewIVPColor(indices, positions, colors, drawinfo.WithName(name))
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		data, err := cfg.Marshal("yaml")
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}
	if err := cfg.SaveTo(args[0]); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[0])
	return nil
}
