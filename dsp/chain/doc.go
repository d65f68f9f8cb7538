// Package chain assembles configured processing stages into an ordered,
// stateful chain executed over one sample buffer at a time.
//
// Stage configuration enters as a closed tagged variant ([Config]) or as a
// loosely typed operation from an API boundary ([ParseOp]). A [Chain]
// validates every stage before touching any audio (atomic
// validate-then-execute), runs stages strictly in caller order as
// sequential scans, accumulates per-stage wall-clock timing, and rolls
// stage state back if an execution is cancelled or fails.
//
// Stages carry recurrence state (filter delay elements, envelope levels)
// across buffers, which is what makes streaming processing seamless: the
// chain belonging to a live session keeps its state between successive
// small buffers until the session ends.
package chain
