package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText writes the report as aligned text table.
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Tracked routine: %06X\n\n", r.Track); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Address\tStatus\tCalls\tIndexed\tJumps\tConditional\tIn loop\tSubroutines")
	for _, h := range r.All() {
		fmt.Fprintf(tw, "%06X\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			h.Address, h.Status, h.Calls, h.IndexedCalls, h.Jumps,
			yesNo(h.CondCalls), yesNo(h.InLoopCalls), h.subroutineText())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	for _, h := range r.Failed {
		if _, err := fmt.Fprintf(w, "\n%06X: %s", h.Address, h.Err); err != nil {
			return err
		}
	}
	if len(r.Failed) > 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func (h *Handler) subroutineText() string {
	if len(h.Subroutines) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(h.Subroutines))
	for _, sub := range h.Subroutines {
		parts = append(parts, fmt.Sprintf("%06X x%d @%d", sub.Address, sub.Count, sub.Depth))
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
