// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model is the root of a model-building session. A Model couples the
// schema registry of one version with the instance store validated against
// it, and seeds the objects every simulation input needs.
//
// # Construction
//
// New builds an empty model for a version and seeds it with:
//
//   - Version: the version identifier the model was built for.
//
//   - Building: an object with schema defaults only.
//
//   - RunPeriod: "default_period", running from January 1 to December 31.
//
// NewFromFile reads an instance file, takes the version from its Version
// record and ingests the whole file. Seeds are added afterwards only for the
// types the file leaves empty, so a file that declares its own Building does
// not collide with the default one.
//
// Schemas are read from the embedded schemas package unless WithSchemaFS or
// WithSchemaDir point elsewhere. Registries are cached per version and shared
// between models.
package model
