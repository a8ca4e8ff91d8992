/*
Package common provides the workflow primitives shared by adaptors.

It composes operations into sequences, resolves reference placeholders
against the state present at call time, and folds operation results back
into the state.

# Placeholders

Operation parameters are descriptors: plain values, maps, slices, or
Resolver leaves. Expand walks a descriptor and resolves every leaf against
the current state, so an operation built before a value exists can still
reference it.

	params := map[string]any{
		"name": common.DataValue("patient.name"),
		"org":  common.LastReferenceValue("$.id"),
	}

Paths use JSONPath syntax ("$.data.items[0].id", "$.items[*].name").
*/
package common
