// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/idfgo/internal/store"
	"github.com/vk/idfgo/internal/testutil"
)

func TestNewFromFile(t *testing.T) {
	ctx, logs := testutil.Context(t)
	path := testutil.WriteFile(t, "office.idf", `
Version, 8.6;
Building, Office, 30;
RunPeriod, Summer, 6, 1, 8, 31;
Zone, Z1;
Zone, Z2, 0, 5;
`)

	m, err := NewFromFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "8.6.0", m.Version())

	building, ok := m.Get("Building").(store.Singleton)
	require.True(t, ok)
	assert.Equal(t, "Office", building.Object.ID(), "the file's building replaces the default")

	assert.True(t, m.Exists("RunPeriod", "summer"))
	assert.False(t, m.Exists("RunPeriod", "default_period"))
	assert.Len(t, m.Get("Zone").All(), 2)
	assert.Contains(t, logs.String(), "Model loaded from file.")
	assert.Contains(t, logs.String(), "objects=4")
}

func TestNewFromFile_DefaultVersion(t *testing.T) {
	ctx, logs := testutil.Context(t)
	path := testutil.WriteFile(t, "bare.idf", "Zone, Z1;\n")

	m, err := NewFromFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, m.Version())
	assert.Contains(t, logs.String(), "Instance file has no version identifier; assuming default.")

	assert.NotNil(t, m.Get("Building"), "missing seeds are filled in")
	assert.True(t, m.Exists("RunPeriod", "default_period"))
	assert.True(t, m.Exists("Zone", "z1"))
}

func TestNewFromFile_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewFromFile(ctx, "does/not/exist.idf")
	assert.ErrorIs(t, err, store.ErrFileNotFound)

	path := testutil.WriteFile(t, "dup.idf", "Version, 8.6;\nZone, Z1;\nZone, z1;\n")
	_, err = NewFromFile(ctx, path)
	assert.ErrorIs(t, err, store.ErrDuplicateIdentity)

	path = testutil.WriteFile(t, "future.idf", "Version, 42.0;\n")
	_, err = NewFromFile(ctx, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "42.0.0.idd")
}
