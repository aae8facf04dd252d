// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

// Package models defines the canonical data structures shared across the
// normalization, feature extraction, and recommendation packages.
//
// The types here are plain data: they carry no behaviour beyond small
// accessors, and no package in this module mutates them after creation.
package models
