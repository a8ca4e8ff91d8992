/*
Package adaptor composes sequences of HTTP operations against a single
external system, threading an evolving State through each step.

# Concept

An Operation is a function from State to State. Builders such as Post,
Create and CreatePatient return Operations; Execute runs them strictly in
order, each receiving the state produced by its predecessor. The first
failure stops the sequence and is returned to the caller unchanged.

Parameters are descriptors that may contain placeholders (SourceValue,
DataValue, LastReferenceValue, Merge). They are resolved when the
operation runs, against the state present at that moment, so an operation
can refer to results that do not exist yet when it is built.

# Usage

	op := adaptor.Execute(
		adaptor.CreatePatient(map[string]any{"name": "Ada"}, nil),
		adaptor.Create("encounter", map[string]any{
			"patientId": adaptor.DataValue("id"),
		}, nil),
	)

	state, err := op(ctx, &adaptor.State{
		Configuration: &adaptor.Configuration{
			BaseURL:  "https://example.org/api",
			Username: "user",
			Password: "secret",
		},
	})

The package-level builders use Default(). Use New with options to supply
an *http.Client, a logger, hooks or a different success status set.

# State

  - configuration: connection settings; never modified by operations.
  - references: previous data payloads, most recent first.
  - data: payload of the last create-family operation.
  - response: the last HTTP response.

Any other top-level key supplied by the caller is kept in State.Extras and
serialized inline.
*/
package adaptor
