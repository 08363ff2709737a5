package report

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/snescfa/internal/graph"
)

// Status is the analysis result of a handler.
type Status int

// Handler statuses.
const (
	StatusKO      Status = iota // tracked routine is not called exactly once on every path
	StatusOK                    // tracked routine is called unconditionally outside of loops
	StatusIgnored               // handler is part of the ignore list
	StatusFailed                // handler could not be analyzed
)

var statusNames = [...]string{
	StatusKO:      "KO",
	StatusOK:      "OK",
	StatusIgnored: "Ignored",
	StatusFailed:  "Failed",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Subroutine is a subroutine of a handler that calls the tracked routine.
type Subroutine struct {
	Address uint32 `json:"address"`
	Count   int    `json:"count"`
	Depth   int    `json:"depth"` // call graph distance from the handler
}

// Handler is the report of a single handler.
type Handler struct {
	Address      uint32       `json:"address"`
	Calls        int          `json:"calls"`
	IndexedCalls int          `json:"indexed_calls"`
	Jumps        int          `json:"jumps"`
	Subroutines  []Subroutine `json:"subroutines,omitempty"`
	CondCalls    bool         `json:"cond_calls"`
	InLoopCalls  bool         `json:"in_loop_calls"`
	Status       Status       `json:"status"`
	Err          string       `json:"error,omitempty"`
}

// NewHandler creates the report of an analyzed handler. A handler is OK if
// it calls the tracked routine only unconditionally and outside of loops,
// does not use indexed calls and has no subroutine that calls the tracked
// routine.
func NewHandler(analysis *Analysis, track uint32) (*Handler, error) {
	root := analysis.Root()
	h := &Handler{
		Address:      analysis.Address,
		Calls:        root.CallCount(track),
		IndexedCalls: len(root.IndexedCalls),
		Jumps:        len(root.Jumps),
		CondCalls:    analysis.CondCalls,
		InLoopCalls:  analysis.InLoopCalls,
	}

	if err := h.findSubroutines(analysis.CallGraph, track); err != nil {
		return nil, err
	}
	h.computeStatus()
	return h, nil
}

func (h *Handler) findSubroutines(g *CallGraph, track uint32) error {
	entry := g.Entry()
	for _, node := range g.Nodes() {
		if node == entry {
			continue
		}
		count := node.Data.CallCount(track)
		if count == 0 {
			continue
		}

		depth, err := graph.ShortestPath(g, entry.ID, node.ID)
		if err != nil {
			return err
		}
		h.Subroutines = append(h.Subroutines, Subroutine{
			Address: node.Data.Routine.Address,
			Count:   count,
			Depth:   depth,
		})
	}
	return nil
}

func (h *Handler) computeStatus() {
	h.Status = StatusOK
	if h.Calls > 0 && (h.CondCalls || h.InLoopCalls) {
		h.Status = StatusKO
	}
	if h.IndexedCalls > 0 || len(h.Subroutines) > 0 {
		h.Status = StatusKO
	}
}

// Report contains the handler reports grouped by status.
type Report struct {
	Track   uint32     `json:"track"`
	OK      []*Handler `json:"ok"`
	KO      []*Handler `json:"ko"`
	Ignored []*Handler `json:"ignored"`
	Failed  []*Handler `json:"failed,omitempty"`
}

// All returns all handlers, OK first followed by KO, ignored and failed ones.
func (r *Report) All() []*Handler {
	all := make([]*Handler, 0, len(r.OK)+len(r.KO)+len(r.Ignored)+len(r.Failed))
	all = append(all, r.OK...)
	all = append(all, r.KO...)
	all = append(all, r.Ignored...)
	return append(all, r.Failed...)
}

func (r *Report) add(h *Handler) {
	switch h.Status {
	case StatusOK:
		r.OK = append(r.OK, h)
	case StatusIgnored:
		r.Ignored = append(r.Ignored, h)
	case StatusFailed:
		r.Failed = append(r.Failed, h)
	default:
		r.KO = append(r.KO, h)
	}
}

func (r *Report) finalize() {
	sort.SliceStable(r.KO, func(i, j int) bool {
		return r.KO[i].Calls < r.KO[j].Calls
	})
}

// Generate analyzes all handlers and every routine found during the analysis
// that calls the tracked routine. Handlers in the ignore list are not
// analyzed. A handler that fails to analyze is reported as failed and the
// generation continues with the next one.
func Generate(ctx context.Context, logger *log.Logger, analyzer *Analyzer, handlers, ignore []uint32) (*Report, error) {
	report := &Report{Track: analyzer.Track()}

	queued := set.New[uint32]()
	var pending []uint32
	enqueue := func(address uint32) {
		if queued.Contains(address) {
			return
		}
		queued.Add(address)
		pending = append(pending, address)
	}
	for _, address := range handlers {
		enqueue(address)
	}

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generating report: %w", err)
		}

		address := pending[0]
		pending = pending[1:]

		if slices.Contains(ignore, address) {
			report.add(&Handler{Address: address, Status: StatusIgnored})
			continue
		}

		analysis, err := analyzer.Analyze(address)
		var h *Handler
		if err == nil {
			h, err = NewHandler(analysis, analyzer.Track())
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			logger.Warn("Skipping routine that failed to analyze", log.Hex("address", address), log.Err(err))
			report.add(&Handler{Address: address, Status: StatusFailed, Err: err.Error()})
			continue
		}
		report.add(h)

		// subroutines calling the tracked routine are analyzed like handlers
		entry := analysis.CallGraph.Entry()
		for _, node := range analysis.CallGraph.Nodes() {
			if node == entry || node.Data.CallCount(analyzer.Track()) == 0 {
				continue
			}
			if !queued.Contains(node.Data.Routine.Address) {
				logger.Info("Add subroutine", log.Hex("address", node.Data.Routine.Address))
				enqueue(node.Data.Routine.Address)
			}
		}
	}

	report.finalize()
	return report, nil
}
