// Package dynamics implements the envelope-follower based processors of
// the voice chain: noise gate, compressor, and de-esser.
//
// All three share the same detector: a smoothed running estimate of the
// input magnitude with separate attack and release time constants. The
// envelope is the only recurrence state a dynamics stage carries, so each
// processor exposes it for snapshot/restore across streaming buffers.
//
// Processors are mono and not thread-safe; one instance belongs to exactly
// one session.
package dynamics
