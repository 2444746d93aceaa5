// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package owl implements the OWL2 structural model of axioms and expressions.
//
// Each syntactic category of OWL2 is a closed set of variants: a sealed
// interface with one unexported marker method that only types in this
// package implement. Consumers dispatch on the variants with type switches.
// Ordered operands are held in a Sequence of indexed elements.
//
// The model follows https://www.w3.org/TR/owl2-syntax/.
package owl // import "github.com/kortschak/owlrdf/internal/owl"
