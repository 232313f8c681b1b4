// Package debounce runs a function once a burst of triggers has settled.
//
// Each Trigger replaces the pending value and restarts the delay; only the
// last value of a burst is delivered. Runs never overlap: a trigger that
// arrives while the function is running schedules another trailing run.
//
//	d := debounce.New(500*time.Millisecond, func(ctx context.Context, in preview.Input) {
//	    res := renderer.Render(ctx, in)
//	    publish(res)
//	})
//	defer d.Stop()
//
//	d.Trigger(input)
package debounce
