// Package dispatch fans one query out to several providers at once and
// tracks each provider's outcome on its own.
//
// A submission resets every selected provider's cell on the [Board] to
// Pending, then starts one goroutine per provider. Each goroutine writes
// only its own cell, and only while the cell still belongs to its
// submission, so a slow answer from an earlier submission can never
// overwrite a newer one. Resolved outcomes are also delivered, in
// resolution order, on the submission's Updates channel:
//
//	sub, err := orch.Dispatch(ctx, "What is 2+2?", []dispatch.Selection{
//	    {Provider: "openai", Model: "gpt-4o-mini"},
//	    {Provider: "claude"},
//	})
//	for o := range sub.Updates() {
//	    fmt.Println(o.Provider, o.State, o.Text)
//	}
package dispatch
