// Package cfg builds the control flow graph of a routine.
package cfg

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/snescfa/internal/arch/w65816"
	"github.com/retroenv/snescfa/internal/disasm"
	"github.com/retroenv/snescfa/internal/graph"
)

// ErrMultipleExitBlocks is returned when more than one block has no successors.
var ErrMultipleExitBlocks = errors.New("multiple exit blocks found")

// Graph is a control flow graph with basic blocks as node payload.
type Graph = graph.Graph[*Block]

type builder struct {
	logger  *log.Logger
	routine *disasm.Routine
	graph   *Graph
	current *graph.Node[*Block] // nil after an unconditional branch
}

// Build creates the control flow graph of the routine. Blocks start at the
// routine entry and at branch targets and end after branch instructions.
func Build(logger *log.Logger, routine *disasm.Routine) (*Graph, error) {
	b := &builder{
		logger:  logger,
		routine: routine,
		graph:   graph.New[*Block](),
	}
	if err := b.run(); err != nil {
		return nil, fmt.Errorf("building graph of routine %06X: %w", routine.Address, err)
	}
	return b.graph, nil
}

func (b *builder) run() error {
	entry := b.addNode(b.routine.Address)
	if err := b.graph.SetEntry(entry.ID); err != nil {
		return err
	}
	b.current = entry

	labels, err := b.findLabels()
	if err != nil {
		return err
	}

	for _, ins := range b.routine.Instructions {
		if labels.Contains(ins.Address) {
			if err := b.handleLabel(ins); err != nil {
				return err
			}
		}

		if ins.Has(w65816.Branch) {
			err = b.handleBranch(ins)
		} else {
			err = b.handleBody(ins)
		}
		if err != nil {
			return err
		}
	}

	return b.setExitNode()
}

// findLabels returns the targets of all branches.
func (b *builder) findLabels() (set.Set[uint32], error) {
	labels := set.New[uint32]()
	for _, ins := range b.routine.Instructions {
		if !ins.Has(w65816.Branch) {
			continue
		}
		target, err := ins.StaticJumpTarget()
		if err != nil {
			return nil, err
		}
		labels.Add(target)
	}
	return labels, nil
}

func (b *builder) addNode(address uint32) *graph.Node[*Block] {
	node, created := b.graph.AddNode(NodeID(address))
	if created {
		node.Data = &Block{Address: address}
	}
	return node
}

// handleLabel starts a new block at a branch target and links the previous
// block to it if control falls through.
func (b *builder) handleLabel(ins *disasm.Instruction) error {
	b.logger.Debug("Found label", log.Hex("address", ins.Address))

	prev := b.current
	b.current = b.addNode(ins.Address)

	if prev != nil && prev != b.current {
		return b.graph.AddEdge(prev.ID, b.current.ID, 0)
	}
	return nil
}

// handleBranch ends the current block. Conditional branches continue with
// the block of the next instruction.
func (b *builder) handleBranch(ins *disasm.Instruction) error {
	b.logger.Debug("Found branch", log.Hex("address", ins.Address))

	block, err := b.currentBlock(ins)
	if err != nil {
		return err
	}
	block.Data.Instructions = append(block.Data.Instructions, ins)

	target, err := ins.StaticJumpTarget()
	if err != nil {
		return err
	}

	if ins.Has(w65816.Unconditional) {
		targetBlock := b.addNode(target)
		b.current = nil
		return b.graph.AddEdge(block.ID, targetBlock.ID, 0)
	}

	falseBlock := b.addNode(ins.NextAddress())
	trueBlock := b.addNode(target)
	if err := b.graph.AddEdge(block.ID, falseBlock.ID, graph.FalseBranch); err != nil {
		return err
	}
	if err := b.graph.AddEdge(block.ID, trueBlock.ID, graph.TrueBranch); err != nil {
		return err
	}
	b.current = falseBlock
	return nil
}

func (b *builder) handleBody(ins *disasm.Instruction) error {
	block, err := b.currentBlock(ins)
	if err != nil {
		return err
	}
	block.Data.Instructions = append(block.Data.Instructions, ins)
	return nil
}

// currentBlock returns the block that the instruction belongs to. Code that
// follows an unconditional branch has to start a known block.
func (b *builder) currentBlock(ins *disasm.Instruction) (*graph.Node[*Block], error) {
	if b.current != nil {
		return b.current, nil
	}

	node, err := b.graph.Node(NodeID(ins.Address))
	if err != nil {
		return nil, fmt.Errorf("instruction %06X after unconditional branch: %w", ins.Address, err)
	}
	b.current = node
	return node, nil
}

// setExitNode sets the single block without successors as exit. The entry
// is the exit if every other block has successors.
func (b *builder) setExitNode() error {
	entry := b.graph.Entry()
	var exit *graph.Node[*Block]

	for _, node := range b.graph.Nodes() {
		if node.SuccessorCount() != 0 || node == entry {
			continue
		}
		if exit != nil {
			return fmt.Errorf("blocks %s and %s: %w", exit.Data.Name(), node.Data.Name(), ErrMultipleExitBlocks)
		}
		exit = node
	}

	if exit == nil {
		exit = entry
	}
	return b.graph.SetExit(exit.ID)
}
