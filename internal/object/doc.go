// Package object turns raw field values into validated object instances.
//
// New and FromValues are the only constructors of an Object. Both are pure:
// they consult the given idd.ObjectDefinition, coerce each value to the
// field's kind, enforce bounds, keys and required fields, expand extensible
// groups and return either a complete Object or a *ValidationError. An
// Object is immutable; changing a field means building a new one.
package object
