// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "strings"

// Seed is an object added to every new model.
type Seed struct {
	Type   string
	Fields map[string]any
}

// DefaultSeeds returns the Building and RunPeriod every model starts with.
// The Version object is seeded separately from the model's version.
func DefaultSeeds() []Seed {
	return []Seed{
		{Type: "Building", Fields: map[string]any{}},
		{Type: "RunPeriod", Fields: map[string]any{
			"Name":               "default_period",
			"Begin Month":        1,
			"Begin Day of Month": 1,
			"End Month":          12,
			"End Day of Month":   31,
		}},
	}
}

func mergeSeeds(base, extra []Seed) []Seed {
	out := append([]Seed(nil), base...)
	for _, s := range extra {
		replaced := false
		for i := range out {
			if strings.EqualFold(strings.TrimSpace(out[i].Type), strings.TrimSpace(s.Type)) {
				out[i] = s
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, s)
		}
	}
	return out
}
