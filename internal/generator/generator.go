package generator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lth/maskgen/internal/config"
	"github.com/lth/maskgen/internal/mask"
	"github.com/lth/maskgen/internal/placement"
)

var ErrNoOutput = errors.New("no output path")

// progressInterval is how many enumerated patterns pass between callbacks.
const progressInterval = 4096

type Result struct {
	Enumerated uint64
	Survived   uint64
	Keyspace   uint64
	Duration   time.Duration
}

type Progress struct {
	Processed   uint64
	Total       uint64
	Survived    uint64
	ElapsedTime time.Duration
}

type Generator struct {
	cfg        config.Config
	filter     placement.Filter
	formatter  *mask.Formatter
	progressCb func(Progress)
}

func New(cfg config.Config) *Generator {
	return &Generator{
		cfg:       cfg,
		filter:    placement.NewFilter(cfg.Thresholds()),
		formatter: mask.NewFormatter(cfg.Mode, cfg.Charsets()),
	}
}

func (g *Generator) SetProgressCallback(cb func(Progress)) {
	g.progressCb = cb
}

// Total is the number of placement strings that will be enumerated.
func (g *Generator) Total() uint64 {
	return placement.Count(g.cfg.Length)
}

// Generate writes one mask line per surviving placement string to w, in
// enumeration order. A nil w only counts.
func (g *Generator) Generate(w io.Writer) (Result, error) {
	start := time.Now()
	total := g.Total()

	var bw *bufio.Writer
	if w != nil {
		bw = bufio.NewWriterSize(w, 64*1024)
	}

	var res Result
	enumerated := func(yield func(string) bool) {
		for p := range placement.All(g.cfg.Length) {
			res.Enumerated++
			if g.progressCb != nil && res.Enumerated%progressInterval == 0 {
				g.reportProgress(res, total, start)
			}
			if !yield(p) {
				return
			}
		}
	}

	for p := range g.filter.Apply(enumerated) {
		res.Survived++
		res.Keyspace = mask.AddSat(res.Keyspace, g.formatter.Keyspace(p))

		if bw == nil {
			continue
		}
		if _, err := bw.WriteString(g.formatter.Line(p)); err != nil {
			return res, fmt.Errorf("write mask: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return res, fmt.Errorf("write mask: %w", err)
		}
	}

	if bw != nil {
		if err := bw.Flush(); err != nil {
			return res, fmt.Errorf("write mask: %w", err)
		}
	}

	if g.progressCb != nil {
		g.reportProgress(res, total, start)
	}

	res.Duration = time.Since(start)
	return res, nil
}

func (g *Generator) reportProgress(res Result, total uint64, start time.Time) {
	g.progressCb(Progress{
		Processed:   res.Enumerated,
		Total:       total,
		Survived:    res.Survived,
		ElapsedTime: time.Since(start),
	})
}

// WriteFile creates (or truncates) path and generates into it. On failure
// whatever was already written is left in place.
func (g *Generator) WriteFile(path string) (Result, error) {
	if path == "" {
		return Result{}, ErrNoOutput
	}

	f, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("create output: %w", err)
	}

	res, err := g.Generate(f)
	if err != nil {
		f.Close()
		return res, err
	}
	if err := f.Close(); err != nil {
		return res, fmt.Errorf("close output: %w", err)
	}
	return res, nil
}
