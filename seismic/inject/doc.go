// Package inject adds synthetic instrument self-noise to seismogram traces.
//
// An [Injector] resolves the component of every trace, looks up (or takes
// from the caller) the reference noise spectrum, converts it into the
// trace's physical unit, synthesizes noise matching each trace's sampling
// and adds it to the trace samples in place.
package inject
