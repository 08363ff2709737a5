// Package writer implements the text listings of routines and their graphs.
package writer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/snescfa/internal/arch/w65816"
	"github.com/retroenv/snescfa/internal/cfg"
	"github.com/retroenv/snescfa/internal/disasm"
	"github.com/retroenv/snescfa/internal/graph"
	"github.com/retroenv/snescfa/internal/loop"
)

const hexCommentColumn = 32

// Writer implements the text listings.
type Writer struct {
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	Addresses   bool // prefix instructions with their address
	HexComments bool // append the instruction bytes as comment
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// WriteRoutine writes the instructions of the routine sorted by address.
// Branch and jump targets are preceded by a label.
func (w Writer) WriteRoutine(routine *disasm.Routine) error {
	instructions := slices.Clone(routine.Instructions)
	slices.SortFunc(instructions, func(a, b *disasm.Instruction) int {
		return int(a.Address) - int(b.Address)
	})

	labels := set.New[uint32]()
	for _, ins := range instructions {
		if !ins.Opcode.Attributes.HasAny(w65816.Branch | w65816.Jump) {
			continue
		}
		if target, ok, err := ins.JumpTarget(); err == nil && ok {
			labels.Add(target)
		}
	}

	if _, err := fmt.Fprintf(w.writer, "; routine %06X\n", routine.Address); err != nil {
		return fmt.Errorf("writing routine header: %w", err)
	}
	for i, ins := range instructions {
		if labels.Contains(ins.Address) {
			if err := w.writeLabel(i > 0, ins.Address); err != nil {
				return err
			}
		}
		if err := w.writeInstruction(ins); err != nil {
			return err
		}
	}
	return nil
}

// WriteCFG writes all blocks of the graph with their instructions and
// successors.
func (w Writer) WriteCFG(g *cfg.Graph) error {
	for i, node := range g.Nodes() {
		if i > 0 {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}

		if _, err := fmt.Fprintf(w.writer, "block %s%s:\n", node.Data.Name(), blockMarker(g, node)); err != nil {
			return fmt.Errorf("writing block header: %w", err)
		}
		for _, ins := range node.Data.Instructions {
			if err := w.writeInstruction(ins); err != nil {
				return err
			}
		}
		for _, edge := range g.Successors(node) {
			if err := w.writeEdge(g, edge); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteTree writes the dominator tree indented by depth.
func (w Writer) WriteTree(tree *cfg.Graph) error {
	type item struct {
		node  *graph.Node[*cfg.Block]
		depth int
	}

	stack := []item{{node: tree.Entry()}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		indent := strings.Repeat("  ", it.depth)
		if _, err := fmt.Fprintf(w.writer, "%s%s\n", indent, it.node.Data.Name()); err != nil {
			return fmt.Errorf("writing tree node: %w", err)
		}

		children := tree.SuccessorNodes(it.node)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{node: children[i], depth: it.depth + 1})
		}
	}
	return nil
}

// WriteLoops writes the blocks of every loop.
func (w Writer) WriteLoops(g *cfg.Graph, loops []loop.Loop) error {
	if len(loops) == 0 {
		if _, err := fmt.Fprintln(w.writer, "no loops"); err != nil {
			return fmt.Errorf("writing loops: %w", err)
		}
		return nil
	}

	for i, l := range loops {
		names := make([]string, 0, l.Len())
		for _, id := range sortedIDs(l) {
			node, err := g.Node(id)
			if err != nil {
				return fmt.Errorf("loop %d: %w", i, err)
			}
			names = append(names, node.Data.Name())
		}

		if _, err := fmt.Fprintf(w.writer, "loop %d: back edge %s -> %s: %s\n",
			i, l.Tail, l.Header, strings.Join(names, ", ")); err != nil {
			return fmt.Errorf("writing loop: %w", err)
		}
	}
	return nil
}

func (w Writer) writeLabel(newline bool, address uint32) error {
	if newline {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "L_%06X:\n", address); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (w Writer) writeInstruction(ins *disasm.Instruction) error {
	text, err := ins.Text(w.options.Addresses)
	if err != nil {
		return err
	}
	line := "  " + text

	if w.options.HexComments {
		if len(line) < hexCommentColumn {
			line += strings.Repeat(" ", hexCommentColumn-len(line))
		}
		line += " ; " + hexBytes(ins)
	}

	if _, err := fmt.Fprintln(w.writer, line); err != nil {
		return fmt.Errorf("writing instruction: %w", err)
	}
	return nil
}

func (w Writer) writeEdge(g *cfg.Graph, edge graph.Edge) error {
	dest, err := g.Node(edge.To)
	if err != nil {
		return err
	}

	var cond string
	switch edge.Attributes {
	case graph.TrueBranch:
		cond = " (taken)"
	case graph.FalseBranch:
		cond = " (not taken)"
	}

	if _, err := fmt.Fprintf(w.writer, "  -> %s%s\n", dest.Data.Name(), cond); err != nil {
		return fmt.Errorf("writing edge: %w", err)
	}
	return nil
}

func blockMarker(g *cfg.Graph, node *graph.Node[*cfg.Block]) string {
	var markers []string
	if node == g.Entry() {
		markers = append(markers, "entry")
	}
	if node == g.Exit() {
		markers = append(markers, "exit")
	}
	if len(markers) == 0 {
		return ""
	}
	return " (" + strings.Join(markers, ", ") + ")"
}

// hexBytes returns the instruction encoding, operands are little endian.
func hexBytes(ins *disasm.Instruction) string {
	parts := []string{fmt.Sprintf("%02X", ins.Opcode.Value)}
	for i := range ins.OperandLen {
		parts = append(parts, fmt.Sprintf("%02X", byte(ins.Operand>>(8*i))))
	}
	return strings.Join(parts, " ")
}

func sortedIDs(l loop.Loop) []string {
	return strings.Split(l.String(), ", ")
}
