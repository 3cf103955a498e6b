// Package store holds the validated objects of one model-building session.
//
// Objects are kept per type. The variant of each entry is fixed by the
// type's definition: unique types hold a Singleton, every other type an
// ordered Many collection whose members have distinct identities (compared
// case-insensitively). All writes go through object validation, and bulk
// operations (Ingest, FlattenToSingleStorey) either apply completely or
// leave the store untouched.
//
// A Store is not safe for concurrent mutation; callers serialise writes.
package store
