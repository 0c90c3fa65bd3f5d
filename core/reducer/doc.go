// Package reducer throttles repeated calls against a caller-supplied elapsed clock.
//
// Game loops call the same routine every frame; a reducer lets each call site say
// "at most once per Limit milliseconds" without keeping its own timers. State is
// kept per id and created lazily on first use.
//
// # Modes
//
//   - NoLimit: every call invokes the callback.
//   - Normal: the callback runs when Limit milliseconds passed since the last run.
//     The last-run time jumps to the current elapsed value, so long frame gaps
//     collapse into a single run.
//   - ForceCount: the callback runs floor(Elapsed / (Limit*1000)) times in total,
//     catching up in a burst after long gaps instead of dropping runs.
//
// # Usage
//
//	reducer.Call(reducer.Params{
//	    ID:       "minimap",
//	    Callback: func(any) { redrawMinimap() },
//	    Limit:    reducer.Call30PerSecond,
//	    Elapsed:  clock.ElapsedMS(),
//	})
package reducer
