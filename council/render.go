package council

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/llmcouncil/dispatch"
)

// Report summarizes one rendered submission.
type Report struct {
	Answered int
	Failed   int
	// Pending counts providers still unresolved when rendering stopped.
	Pending int
	Elapsed time.Duration
}

// Renderer prints each provider's card to a terminal as soon as it
// resolves, then a one-line summary.
type Renderer struct {
	w       io.Writer
	display func(provider string) string
	now     func() time.Time
}

// NewRenderer writes to w. display maps provider ids to the names shown in
// card headers; nil shows the ids.
func NewRenderer(w io.Writer, display func(provider string) string) *Renderer {
	if display == nil {
		display = func(p string) string { return p }
	}
	return &Renderer{w: w, display: display, now: time.Now}
}

// Render consumes sub until every provider resolved or ctx is done. On ctx
// expiry the unresolved providers are listed and ctx.Err() is returned.
func (r *Renderer) Render(ctx context.Context, sub *dispatch.Submission) (Report, error) {
	start := r.now()
	names := make([]string, len(sub.Selections))
	for i, sel := range sub.Selections {
		names[i] = fmt.Sprintf("%s (%s)", r.display(sel.Provider), sel.Model)
	}
	fmt.Fprintf(r.w, "Asking %d providers: %s\n\n", len(names), strings.Join(names, ", "))

	var rep Report
	resolved := make(map[string]bool, len(sub.Selections))
	for {
		select {
		case o, ok := <-sub.Updates():
			if !ok {
				rep.Elapsed = r.now().Sub(start)
				r.summary(rep)
				return rep, nil
			}
			resolved[o.Provider] = true
			r.card(o)
			if o.State == dispatch.Success {
				rep.Answered++
			} else {
				rep.Failed++
			}
		case <-ctx.Done():
			for _, sel := range sub.Selections {
				if !resolved[sel.Provider] {
					rep.Pending++
					fmt.Fprintf(r.w, "── %s · %s · still loading\n\n", r.display(sel.Provider), sel.Model)
				}
			}
			rep.Elapsed = r.now().Sub(start)
			r.summary(rep)
			return rep, ctx.Err()
		}
	}
}

func (r *Renderer) card(o dispatch.Outcome) {
	secs := o.Duration.Seconds()
	switch o.State {
	case dispatch.Success:
		fmt.Fprintf(r.w, "── %s · %s · %.2fs\n%s\n\n", r.display(o.Provider), o.Model, secs, strings.TrimSpace(o.Text))
	default:
		fmt.Fprintf(r.w, "── %s · %s · failed after %.2fs\nError: %s\n\n", r.display(o.Provider), o.Model, secs, o.Message)
	}
}

func (r *Renderer) summary(rep Report) {
	total := rep.Answered + rep.Failed + rep.Pending
	line := fmt.Sprintf("%d/%d answered", rep.Answered, total)
	if rep.Failed > 0 {
		line += fmt.Sprintf(", %d failed", rep.Failed)
	}
	if rep.Pending > 0 {
		line += fmt.Sprintf(", %d still loading", rep.Pending)
	}
	fmt.Fprintf(r.w, "%s in %.2fs\n", line, rep.Elapsed.Seconds())
}
