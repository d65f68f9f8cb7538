// Package engine is the top-level processing facade. It validates
// requests, assembles stage chains from boundary operation descriptors,
// executes them atomically, and exposes streaming sessions plus the
// waveform and spectrum analysis paths.
package engine
