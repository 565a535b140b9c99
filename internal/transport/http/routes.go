// Package http is the demo solving service: a thin gin layer over
// internal/nono/driver and internal/nono/cache. It never reaches into
// driver internals, only its exported New/Load/Tick/Grid API.
package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nonogram/solver/internal/cachestore"
	"github.com/nonogram/solver/internal/core"
	"github.com/nonogram/solver/internal/nono/cache"
	"github.com/nonogram/solver/internal/nono/driver"
	"github.com/nonogram/solver/internal/nono/solvers"
	"github.com/nonogram/solver/internal/nono/textio"
	"github.com/nonogram/solver/pkg/config"
)

const apiVersion = "1.0.0"

var store *cachestore.Store

// RegisterRoutes wires the demo solving endpoints onto r. store may be
// nil, in which case /api/solve always solves from scratch.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, cs *cachestore.Store) {
	store = cs

	r.GET("/health", healthHandler)

	api := r.Group("/api")
	{
		api.POST("/solve", solveHandler)
		api.POST("/encode", encodeHandler)
		api.POST("/decode", decodeHandler)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": apiVersion})
}

type solveRequest struct {
	Puzzle string `json:"puzzle" binding:"required"`
}

type solveResponse struct {
	PuzzleKey string   `json:"puzzle_key"`
	Grid      []string `json:"grid"`
	Cached    bool     `json:"cached"`
	Ticks     int      `json:"ticks"`
}

// solveHandler parses a puzzle in the textio grammar, runs the driver
// to its first solution, and returns the grid as one string per row
// ('#'/'.' per cell), consulting and populating the persistent cache
// by the puzzle's codec key when one is configured.
func solveHandler(c *gin.Context) {
	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var parseErr error
	p, err := textio.Parse(strings.NewReader(req.Puzzle), func(line int, format string, args ...interface{}) {
		if parseErr == nil {
			parseErr = fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...))
		}
	})
	if err != nil || parseErr != nil {
		msg := "invalid puzzle"
		if parseErr != nil {
			msg = parseErr.Error()
		} else if err != nil {
			msg = err.Error()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	key := cache.EncodePuzzle(p)

	if store != nil {
		if cached, err := store.Get(key); err == nil {
			g, err := cache.DecodeGrid(p.Width, p.Height, cached)
			if err == nil {
				c.JSON(http.StatusOK, solveResponse{PuzzleKey: key, Grid: gridRows(g), Cached: true})
				return
			}
		}
	}

	d := driver.New(solvers.Slots(solvers.PresetFastOlsakComplete))
	if err := d.Load(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ticks := 0
	status := driver.Working
	for status == driver.Working {
		status, err = d.Tick()
		ticks++
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
	}
	if status != driver.Solved {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "puzzle has no solution"})
		return
	}

	grid := d.Grid()
	if store != nil {
		if encoded, err := cache.EncodeGrid(grid); err == nil {
			_ = store.Put(key, encoded)
		}
	}

	c.JSON(http.StatusOK, solveResponse{PuzzleKey: key, Grid: gridRows(grid), Ticks: ticks})
}

func gridRows(g *core.Grid) []string {
	rows := make([]string, g.Height)
	for y := 0; y < g.Height; y++ {
		var b strings.Builder
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) == core.SOLID {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows[y] = b.String()
	}
	return rows
}

type encodeRequest struct {
	Puzzle string `json:"puzzle" binding:"required"`
}

func encodeHandler(c *gin.Context) {
	var req encodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var parseErr error
	p, err := textio.Parse(strings.NewReader(req.Puzzle), func(line int, format string, args ...interface{}) {
		if parseErr == nil {
			parseErr = fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...))
		}
	})
	if err != nil || parseErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid puzzle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": cache.EncodePuzzle(p)})
}

type decodeRequest struct {
	Key    string `json:"key" binding:"required"`
	Width  int    `json:"width" binding:"required"`
	Height int    `json:"height" binding:"required"`
}

func decodeHandler(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := cache.DecodePuzzle(req.Width, req.Height, req.Key)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var b strings.Builder
	if err := textio.Write(&b, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"puzzle": b.String()})
}
