package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/dmitrijs2005/mybank/internal/client/views"
)

// TermRenderer prints views to a terminal. Delayed refreshes render from
// timer goroutines, so every write holds the mutex.
type TermRenderer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTermRenderer(w io.Writer) *TermRenderer {
	return &TermRenderer{w: w}
}

func (r *TermRenderer) PageChanged(page string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "== %s ==\n", page)
}

func (r *TermRenderer) RenderView(area string, v views.View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch v.Kind {
	case views.ViewLoading:
		fmt.Fprintf(r.w, "[%s] %s\n", area, v.Message)
	case views.ViewError:
		fmt.Fprintf(r.w, "[%s] error: %s\n", area, v.Message)
	case views.ViewEmpty:
		fmt.Fprintf(r.w, "[%s] %s\n", area, v.Message)
	case views.ViewTable:
		writeTable(r.w, v.Table)
	}
}

func writeTable(w io.Writer, t views.Table) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

// RenderStatus prints a status line. The idle status clears a line in a
// browser; here it is not printed at all.
func (r *TermRenderer) RenderStatus(area string, s views.Status) {
	if s.Kind == views.StatusIdle {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "[%s] %s: %s\n", area, s.Kind, s.Message)
}

func (r *TermRenderer) RenderForm(area string, f views.Form) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "[%s]\n", area)
	for _, k := range f.Keys() {
		fmt.Fprintf(tw, "  %s:\t%s\n", k, f[k])
	}
	_ = tw.Flush()
}
