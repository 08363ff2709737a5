// Package pipeline orchestrates the routine analysis stages.
package pipeline

import (
	"context"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/app"
	"github.com/retroenv/snescfa/internal/arch/w65816"
	"github.com/retroenv/snescfa/internal/cfg"
	"github.com/retroenv/snescfa/internal/detector"
	"github.com/retroenv/snescfa/internal/disasm"
	"github.com/retroenv/snescfa/internal/dominator"
	"github.com/retroenv/snescfa/internal/loader"
	"github.com/retroenv/snescfa/internal/loop"
	"github.com/retroenv/snescfa/internal/options"
	"github.com/retroenv/snescfa/internal/rom"
)

// Stage is a step of the analysis. Every stage requires all previous ones.
type Stage int

const (
	StageRoutine Stage = iota
	StageCFG
	StageDominators
	StageLoops
)

// Result contains the output of all executed stages.
type Result struct {
	Routine *disasm.Routine
	CFG     *cfg.Graph
	Tree    *cfg.Graph
	Loops   []loop.Loop
}

// Pipeline orchestrates the complete analysis workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	table    *w65816.Table
}

// New creates a new analysis pipeline.
func New(logger *log.Logger, table *w65816.Table) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		table:    table,
	}
}

// Open loads the ROM file and detects its mapping.
func (p *Pipeline) Open(opts options.Program) (*rom.Rom, error) {
	data, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	mapping, err := p.detector.Detect(opts, data)
	if err != nil {
		return nil, fmt.Errorf("detecting mapping: %w", err)
	}

	app.PrintInfo(p.logger, opts, mapping, len(data))
	return rom.New(data, mapping), nil
}

// Reader returns a routine reader for the ROM.
func (p *Pipeline) Reader(r *rom.Rom) *disasm.Reader {
	return disasm.New(p.logger, p.table, r)
}

// Execute runs all stages up to and including the last one for the routine.
func (p *Pipeline) Execute(ctx context.Context, r *rom.Rom, routine options.Routine, last Stage, opts options.Program) (*Result, error) {
	result := &Result{}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var err error
	result.Routine, err = p.Reader(r).ReadRoutine(routine.Address, routine.Flags)
	if err != nil {
		return nil, err
	}
	if last == StageRoutine {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.CFG, err = cfg.Build(p.logger, result.Routine)
	if err != nil {
		return nil, err
	}
	if last == StageCFG {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.Tree, err = dominator.Build(result.CFG, p.DominatorOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("building dominator tree: %w", err)
	}
	if last == StageDominators {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.Loops, err = loop.Find(result.CFG, result.Tree)
	if err != nil {
		return nil, fmt.Errorf("finding loops: %w", err)
	}
	return result, nil
}

// DominatorOptions returns the dominator tree builder options for the
// program options.
func (p *Pipeline) DominatorOptions(opts options.Program) []dominator.Option {
	return []dominator.Option{
		dominator.WithLogger(p.logger),
		dominator.WithMaxPasses(opts.MaxDomPasses),
	}
}
