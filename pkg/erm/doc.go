// Package erm loads diagram exchange files (.erm) into the canonical
// [entity.Diagram] model.
//
// # Overview
//
// Loading a diagram is one synchronous call:
//
//	d, err := erm.Open("shop.erm")
//	if err != nil {
//	    return err
//	}
//	for _, t := range d.DiagramWalkers.Tables {
//	    fmt.Println(t.PhysicalName)
//	}
//
// [Open] reads the whole file, detects which on-disk revision wrote it,
// normalizes it and returns the diagram. It never returns a partial diagram.
// Projection to the transport shape is left to the caller: use [OpenDTO] or
// [github.com/matzehuels/ermview/pkg/erm/dto.FromEntity].
//
// # Errors
//
// Errors carry a code from [github.com/matzehuels/ermview/pkg/errors] so
// callers and tests can tell failure kinds apart. Hosts that only display
// failures can call [LoadDiagram], which flattens every failure into an
// [ErrorMessage].
//
// # Logging
//
// [Loader] is the logging variant of [Open]. Each load gets a random id and
// is reported with its detected revision, table count and duration through
// a charmbracelet/log logger.
//
// # Concurrency
//
// Loads share no state. Concurrent calls on the same or different paths are
// safe.
package erm
