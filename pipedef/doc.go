// Package pipedef builds pipelines from YAML descriptions.
//
// A description names each stage by kind and by an operation registered in
// a Registry:
//
//	name: windowed
//	stages:
//	  - {kind: map, op: mul, args: [2]}
//	  - {kind: window, op: windowify, args: [2]}
//	  - {kind: filter, op: left_sum_gt, args: [4]}
//	  - {kind: window, op: dewindowify}
//	  - {kind: reduce, op: sum}
//
// Builtins registers integer operations. Build resolves a Definition into
// []pipeline.Stage ready for pipeline.Apply.
package pipedef
