// Package status provides sinks for parameter status dumps.
//
// TextSink writes the tab-separated line format, one line per parameter.
// CBORSink writes one CBOR record per parameter for machine consumers.
// CollectSink keeps records in memory.
package status
