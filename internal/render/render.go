// Package render converts analysis graphs to Graphviz DOT documents.
package render

import (
	"fmt"

	"github.com/retroenv/snescfa/internal/arch/w65816"
	"github.com/retroenv/snescfa/internal/cfg"
	"github.com/retroenv/snescfa/internal/graph"
	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"
)

// FuncCFG converts a control flow graph to a lattice function. Block
// boundaries are instruction indexes in block order.
func FuncCFG(name string, g *cfg.Graph) (*lattice.FuncCFG, error) {
	ids := make(map[string]int, g.Len())
	for i, node := range g.Nodes() {
		ids[node.ID] = i
	}

	f := &lattice.FuncCFG{Name: name}
	index := 0
	for i, node := range g.Nodes() {
		block := &lattice.BasicBlock{
			ID:    i,
			Start: index,
			End:   index + len(node.Data.Instructions),
			Term:  node.SuccessorCount() == 0,
		}

		for _, edge := range g.Successors(node) {
			block.Succs = append(block.Succs, lattice.Successor{
				BlockID: ids[edge.To],
				Cond:    condition(edge.Attributes),
			})
		}

		for j, ins := range node.Data.Instructions {
			if !ins.Has(w65816.EnterSub) {
				continue
			}
			callee := "computed"
			target, ok, err := ins.JumpTarget()
			if err != nil {
				return nil, fmt.Errorf("call at %06X: %w", ins.Address, err)
			}
			if ok {
				callee = fmt.Sprintf("%06X", target)
			}
			block.Calls = append(block.Calls, lattice.CallSite{
				Offset: index + j,
				Callee: callee,
			})
		}

		index = block.End
		f.Blocks = append(f.Blocks, block)
	}
	return f, nil
}

// CFGDOT renders a control flow graph.
func CFGDOT(name string, g *cfg.Graph) (string, error) {
	f, err := FuncCFG(name, g)
	if err != nil {
		return "", err
	}
	cg := &lattice.CFGGraph{Funcs: []*lattice.FuncCFG{f}}
	return render.DOTCFG(cg, name), nil
}

// TreeDOT renders a dominator tree.
func TreeDOT[T any](name string, tree *graph.Graph[T]) string {
	return render.DOT(Graph(tree), name)
}

// CallGraphDOT renders a call graph of routines.
func CallGraphDOT[T any](name string, calls *graph.Graph[T]) string {
	return render.DOT(Graph(calls), name)
}

// Graph converts a graph to a lattice graph with duplicate edges removed.
func Graph[T any](g *graph.Graph[T]) *lattice.Graph {
	lg := &lattice.Graph{}
	for _, node := range g.Nodes() {
		lg.Nodes = append(lg.Nodes, node.ID)
	}
	for _, edge := range g.Edges() {
		lg.Edges = append(lg.Edges, lattice.Edge{
			Caller: edge.From,
			Callee: edge.To,
		})
	}
	lg.Dedup()
	return lg
}

func condition(attributes graph.EdgeAttribute) string {
	switch attributes {
	case graph.TrueBranch:
		return "T"
	case graph.FalseBranch:
		return "F"
	default:
		return ""
	}
}
