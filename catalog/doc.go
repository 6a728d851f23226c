// SPDX-License-Identifier: MIT

// Package catalog is a SQLite-backed registry of output layer names.
//
// Resolve turns a requested name into one that is valid and unused: names
// whose first character is not a letter get the "AA_" prefix, and taken
// names get the first free "_1", "_2", … suffix. Record stores a produced
// layer together with the run that produced it.
package catalog
