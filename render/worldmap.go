package render

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/astei/anvilmap/anvil"
)

// WorldMapOptions selects the block rectangle to render. Width, Height and
// Zoom are in blocks and pixels-per-block and must be positive.
type WorldMapOptions struct {
	CenterX int
	CenterZ int
	Width   int
	Height  int
	Zoom    int

	// Workers bounds the chunk-level parallelism; 0 means one worker per
	// CPU.
	Workers int

	// Logger receives per-chunk failures; nil means slog.Default().
	// Malformed chunks are skipped, never fatal.
	Logger *slog.Logger

	// Progress, when set, is called with a 0..100 percentage as chunks
	// finish. Calls are serialized.
	Progress func(percent int)
}

type chunkCoord struct {
	x, z int
}

// WorldMap renders a top-down view of the world onto the surface. Chunks
// are loaded and resolved in parallel; each chunk writes a disjoint set of
// blocks, so the output is deterministic regardless of scheduling.
func WorldMap(world *anvil.World, colors *ColorTable, opts WorldMapOptions, surface Surface) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("render: invalid map size %dx%d", opts.Width, opts.Height)
	}
	if opts.Zoom <= 0 {
		return fmt.Errorf("render: invalid zoom %d", opts.Zoom)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	left := opts.CenterX - opts.Width/2
	top := opts.CenterZ - opts.Height/2

	// The last pixel row is top+Height-1; shifting the inclusive edge
	// avoids loading an extra chunk row when the edge sits on a chunk
	// boundary.
	var coords []chunkCoord
	for cz := top >> 4; cz <= (top+opts.Height-1)>>4; cz++ {
		for cx := left >> 4; cx <= (left+opts.Width-1)>>4; cx++ {
			coords = append(coords, chunkCoord{cx, cz})
		}
	}

	jobs := make(chan chunkCoord)
	var wg sync.WaitGroup
	var mu sync.Mutex // serializes surface writes and progress updates
	done := 0

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for coord := range jobs {
				renderChunk(world, colors, coord, left, top, surface, &mu, logger)

				mu.Lock()
				done++
				if opts.Progress != nil {
					opts.Progress(100 * done / len(coords))
				}
				mu.Unlock()
			}
		}()
	}

	for _, coord := range coords {
		jobs <- coord
	}
	close(jobs)
	wg.Wait()
	return nil
}

// renderChunk loads one chunk, resolves its 256 column colors and writes
// them to the surface under the lock. Absent chunks are skipped silently,
// broken ones with a log line.
func renderChunk(world *anvil.World, colors *ColorTable, coord chunkCoord, left, top int, surface Surface, mu *sync.Mutex, logger *slog.Logger) {
	root, err := world.LoadChunk(coord.x, coord.z)
	if err != nil {
		logger.Warn("skipping chunk", "cx", coord.x, "cz", coord.z, "err", err)
		return
	}
	if root == nil {
		return
	}
	level := root.Get("Level")
	if level == nil {
		return
	}

	columns := resolveColumns(level, colors)

	mu.Lock()
	defer mu.Unlock()
	for i, c := range columns {
		if c == 0 {
			continue
		}
		surface.PutBlock(coord.x*16+i%16-left, coord.z*16+i/16-top, c)
	}
}
