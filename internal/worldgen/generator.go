package worldgen

import (
	"math"

	"github.com/aquilax/go-perlin"

	"voxl/internal/block"
	"voxl/internal/chunk"
	"voxl/internal/config"
	"voxl/internal/profiling"
)

// Generator handles terrain generation logic. It only reads its noise
// tables after construction and is safe for concurrent use.
type Generator struct {
	cfg   config.WorldGen
	noise *perlin.Perlin
}

// NewGenerator creates a generator from normalized settings.
func NewGenerator(cfg config.WorldGen) *Generator {
	cfg.Normalize()
	return &Generator{
		cfg:   cfg,
		noise: perlin.NewPerlin(cfg.Alpha, cfg.Beta, int32(cfg.Octaves), cfg.Seed),
	}
}

// Config returns the settings in effect.
func (g *Generator) Config() config.WorldGen { return g.cfg }

// Solid reports whether the cave field is solid at world cell (x, y, z).
func (g *Generator) Solid(x, y, z int) bool {
	s := g.cfg.Smoothing
	n := g.noise.Noise3D(float64(y)*s, float64(x)*s, float64(z)*s)
	return math.Abs(n) < g.cfg.Threshold
}

// HeightAt computes the surface height (world y) of column (x, z).
func (g *Generator) HeightAt(x, z int) int {
	n := g.noise.Noise2D(float64(x)*g.cfg.Scale, float64(z)*g.cfg.Scale)
	height := float64(g.cfg.BaseHeight) + n*g.cfg.Amplitude
	if height < 0 {
		height = 0
	}
	return int(math.Floor(height))
}

// FillCaves writes solid into every cell of the chunk at `at` where the cave
// field is solid, and returns how many cells were written.
func FillCaves[A chunk.Accessor, C chunk.Cell](g *Generator, c *chunk.Chunk[A, C], at chunk.Coord, solid C) int {
	defer profiling.Track("worldgen.FillCaves")()
	side := c.Dims().SideLen()
	n := 0
	for i, cell := range c.Pointers() {
		x, y, z := at.World(side, c.Dims().FromIndex(i))
		if g.Solid(x, y, z) {
			*cell = solid
			n++
		}
	}
	return n
}

// PopulateTerrain fills the chunk at `at` from the height map: bedrock at
// world y 0, dirt below the surface and grass on top.
func PopulateTerrain[A chunk.Accessor](g *Generator, c *chunk.Chunk[A, block.Type], at chunk.Coord) {
	defer profiling.Track("worldgen.PopulateTerrain")()
	side := c.Dims().SideLen()
	baseY := at.Y * side
	for lx := range side {
		for lz := range side {
			wx, _, wz := at.World(side, chunk.Pos{0, lx, lz})
			top := g.HeightAt(wx, wz) - baseY
			if top < 0 {
				continue
			}
			// The surface lies above this chunk: fill the whole column.
			surface := top < side
			if !surface {
				top = side - 1
			}
			for ly := 0; ly <= top; ly++ {
				b := block.Dirt
				switch {
				case baseY+ly == 0:
					b = block.Bedrock
				case surface && ly == top:
					b = block.Grass
				}
				*c.Ptr(chunk.Pos{ly, lx, lz}) = b
			}
		}
	}
}

// Populate builds a new chunk at `at` using the configured mode.
func Populate[A chunk.Accessor](g *Generator, at chunk.Coord) *chunk.Chunk[A, block.Type] {
	c := chunk.New[A, block.Type]()
	switch g.cfg.Mode {
	case config.ModeTerrain:
		PopulateTerrain(g, c, at)
	default:
		FillCaves(g, c, at, block.Stone)
	}
	return c
}
