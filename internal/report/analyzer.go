// Package report analyzes operation handlers for calls of a tracked routine
// and generates a report of the handlers that call it unconditionally.
package report

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/snescfa/internal/arch/w65816"
	"github.com/retroenv/snescfa/internal/cfg"
	"github.com/retroenv/snescfa/internal/disasm"
	"github.com/retroenv/snescfa/internal/dominator"
	"github.com/retroenv/snescfa/internal/graph"
	"github.com/retroenv/snescfa/internal/loop"
)

// RoutineReader reads a routine starting with the given processor flags.
type RoutineReader interface {
	ReadRoutine(address uint32, p w65816.Flags) (*disasm.Routine, error)
}

// CallGraph contains the routines reachable from a handler. The entry is the
// handler itself.
type CallGraph = graph.Graph[*RoutineInfo]

// Analysis is the result of the analysis of a handler.
type Analysis struct {
	Address   uint32
	CallGraph *CallGraph
	CFG       *cfg.Graph
	Tree      *cfg.Graph
	Loops     []loop.Loop

	CondCalls   bool // tracked routine is not called on every path
	InLoopCalls bool // tracked routine is called inside a loop
}

// Root returns the info of the handler routine.
func (a *Analysis) Root() *RoutineInfo {
	return a.CallGraph.Entry().Data
}

// Analyzer analyzes handlers for calls of the tracked routine.
type Analyzer struct {
	logger     *log.Logger
	reader     RoutineReader
	track      uint32
	dominators []dominator.Option
}

// NewAnalyzer returns a new analyzer. The options are passed to the
// dominator tree builder.
func NewAnalyzer(logger *log.Logger, reader RoutineReader, track uint32, opts ...dominator.Option) *Analyzer {
	return &Analyzer{
		logger:     logger,
		reader:     reader,
		track:      track,
		dominators: append([]dominator.Option{dominator.WithLogger(logger)}, opts...),
	}
}

// Track returns the address of the tracked routine.
func (a *Analyzer) Track() uint32 {
	return a.track
}

// Analyze reads the handler and all its subroutines and checks how the
// tracked routine is called.
func (a *Analyzer) Analyze(address uint32) (*Analysis, error) {
	a.logger.Info("Read routine", log.Hex("address", address))

	analysis := &Analysis{Address: address}
	callGraph, err := a.buildCallGraph(address)
	if err != nil {
		return nil, err
	}
	analysis.CallGraph = callGraph

	routine := analysis.Root().Routine
	analysis.CFG, err = cfg.Build(a.logger, routine)
	if err != nil {
		return nil, err
	}
	analysis.Tree, err = dominator.Build(analysis.CFG, a.dominators...)
	if err != nil {
		return nil, fmt.Errorf("building dominator tree of %06X: %w", address, err)
	}
	analysis.Loops, err = loop.Find(analysis.CFG, analysis.Tree)
	if err != nil {
		return nil, fmt.Errorf("finding loops of %06X: %w", address, err)
	}

	analysis.CondCalls, err = a.hasConditionalCalls(analysis)
	if err != nil {
		return nil, err
	}
	analysis.InLoopCalls, err = a.hasCallsInLoops(analysis)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

func routineID(address uint32) string {
	return fmt.Sprintf("%06X", address)
}

// buildCallGraph reads the handler with 16 bit registers and then every
// subroutine with the flags captured at its first call. The tracked routine
// itself is not read.
func (a *Analyzer) buildCallGraph(address uint32) (*CallGraph, error) {
	g := graph.New[*RoutineInfo]()

	info, err := a.readRoutine(address, w65816.Flags{})
	if err != nil {
		return nil, err
	}
	root, _ := g.AddNode(routineID(address))
	root.Data = info
	if err := g.SetEntry(root.ID); err != nil {
		return nil, err
	}

	stack := append([]SubCall(nil), info.SubCalls...)
	for len(stack) > 0 {
		call := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		target := call.Target.Address
		if target == a.track || g.HasNode(routineID(target)) {
			continue
		}

		info, err := a.readRoutine(target, call.Target.Flags)
		if err != nil {
			return nil, err
		}
		node, _ := g.AddNode(routineID(target))
		node.Data = info

		if err := g.AddEdge(routineID(call.Caller), node.ID, 0); err != nil {
			return nil, err
		}
		stack = append(stack, info.SubCalls...)
	}

	return g, nil
}

func (a *Analyzer) readRoutine(address uint32, p w65816.Flags) (*RoutineInfo, error) {
	routine, err := a.reader.ReadRoutine(address, p)
	if err != nil {
		return nil, err
	}
	info, err := newRoutineInfo(routine)
	if err != nil {
		return nil, fmt.Errorf("analyzing routine %06X: %w", address, err)
	}
	return info, nil
}

func (a *Analyzer) hasTrackedCall(block *cfg.Block, info *RoutineInfo) bool {
	for _, call := range info.Calls(a.track) {
		if block.HasInstruction(call.Address) {
			return true
		}
	}
	return false
}

// hasConditionalCalls returns whether a block calling the tracked routine
// does not dominate the exit block, which means that the call is not done on
// every path through the handler.
func (a *Analyzer) hasConditionalCalls(analysis *Analysis) (bool, error) {
	if analysis.CFG.Len() == 1 {
		return false, nil
	}

	info := analysis.Root()
	exit := analysis.CFG.Exit().ID

	stack := []*graph.Node[*cfg.Block]{analysis.Tree.Entry()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, analysis.Tree.SuccessorNodes(node)...)

		if !a.hasTrackedCall(node.Data, info) {
			continue
		}

		dominates, err := dominator.Dominates(analysis.Tree, node.ID, exit)
		if err != nil {
			return false, err
		}
		if !dominates {
			return true, nil
		}
	}
	return false, nil
}

func (a *Analyzer) hasCallsInLoops(analysis *Analysis) (bool, error) {
	info := analysis.Root()

	for _, l := range analysis.Loops {
		for _, id := range l.Nodes() {
			node, err := analysis.CFG.Node(id)
			if err != nil {
				return false, err
			}
			if a.hasTrackedCall(node.Data, info) {
				return true, nil
			}
		}
	}
	return false, nil
}
