// Package idf tokenizes instance text into records.
//
// An instance file is a sequence of comma separated values terminated by
// `;`. The first value of every record names its object type. Everything
// from a `!` to the end of the line is a comment, and a record may span any
// number of physical lines. The package knows nothing about schemas: values
// are returned as trimmed strings and are validated by the caller.
package idf
