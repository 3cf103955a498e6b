// Package idd parses Input Data Dictionary (IDD) schema text into a Registry
// of object definitions.
//
// An IDD file is line oriented. Lines without a backslash open a new object
// type, `\field` lines open a field on the current object and every other
// directive line mutates whichever field (or object) is currently open. The
// parser keeps that cursor in an explicit state value and rejects any
// directive it does not know.
//
// A Registry is immutable once built and is safe to share between models that
// target the same schema version. Cache memoizes registries per version.
package idd
