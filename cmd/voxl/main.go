package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-gl/mathgl/mgl32"

	"voxl/internal/block"
	"voxl/internal/chunk"
	"voxl/internal/config"
	"voxl/internal/logging"
	"voxl/internal/meshing"
	"voxl/internal/profiling"
	"voxl/internal/store"
	"voxl/internal/worldgen"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "voxl:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		path    = flag.String("config", "", "YAML config file (default $"+config.EnvPath+")")
		seed    = flag.Int64("seed", 0, "world seed")
		radius  = flag.Int("radius", 0, "region radius in chunks")
		policy  = flag.String("policy", "", "mesh policy: instances or culled")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		return err
	}
	// Explicit flags win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.World.Seed = *seed
		case "radius":
			cfg.World.Radius = *radius
		case "policy":
			cfg.Mesh.Policy = *policy
		case "v":
			if *verbose {
				cfg.Log.Level = "debug"
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Normalize()

	lvl, _ := cfg.Log.SlogLevel()
	logging.SetLogger(logging.NewText(os.Stderr, lvl))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cfg.World.Side {
	case 1:
		return generate[chunk.Side1](ctx, cfg)
	case 8:
		return generate[chunk.Side8](ctx, cfg)
	case 16:
		return generate[chunk.Side16](ctx, cfg)
	case 32:
		return generate[chunk.Side32](ctx, cfg)
	}
	return fmt.Errorf("unsupported chunk side %d", cfg.World.Side)
}

func generate[A chunk.Accessor](ctx context.Context, cfg *config.Config) error {
	log := logging.Logger()
	pol, err := chunk.ParsePolicy(cfg.Mesh.Policy)
	if err != nil {
		return err
	}

	gen := worldgen.NewGenerator(cfg.World)
	st := store.New[A, block.Type]()
	if _, err := worldgen.GenerateRegion(ctx, gen, st, chunk.Coord{}, cfg.World.Radius, cfg.Mesh.Workers); err != nil {
		return err
	}

	pool := meshing.NewPool[A, block.Type](cfg.Mesh.Workers, cfg.Mesh.QueueSize)
	defer pool.Shutdown()

	view := st.View()
	meshes, err := meshing.MeshAll(ctx, pool, view, pol, block.IsSolid)
	if err != nil {
		return err
	}

	var placements, faces, vertices int
	for _, at := range view.Coords() {
		m := meshes[at]
		placements += len(m.Placements)
		faces += len(m.Faces)
		vertices += len(chunk.FaceVertices(m.Faces)) / chunk.VertexStride
		log.Debug("chunk meshed",
			"coord", at.String(),
			"placements", len(m.Placements),
			"faces", len(m.Faces))
	}

	log.Info("world meshed",
		slog.Int64("seed", cfg.World.Seed),
		slog.String("mode", cfg.World.Mode),
		slog.Int("side", cfg.World.Side),
		slog.Int("chunks", view.Len()),
		slog.String("policy", pol.String()),
		slog.Int("placements", placements),
		slog.Int("faces", faces),
		slog.Int("vertices", vertices),
		slog.Uint64("epoch", view.Epoch()))
	// Probe the surface straight down the column at the origin.
	top := float32((cfg.World.Radius + 1) * cfg.World.Side)
	probe := view.Raycast(mgl32.Vec3{0, top, 0}, mgl32.Vec3{0, -1, 0}, 2*top, block.IsSolid)
	if probe.Hit {
		b, _ := view.CellAt(probe.HitPosition[0], probe.HitPosition[1], probe.HitPosition[2])
		log.Info("surface probe", "cell", probe.HitPosition, "block", b.String(), "distance", probe.Distance)
	} else {
		log.Info("surface probe", "hit", false)
	}
	log.Info("profile", "top", profiling.TopN(5))
	return nil
}
