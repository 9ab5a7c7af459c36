// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package util holds small helpers shared across package ast and
// package parser that don't belong to either's core data model.
package util

import "github.com/golangee/concrete/ast"

// AttributeList is a read-only, ordered view over a declaration's
// attributes, letting later passes look a name up without re-scanning
// the slice by hand. Attributes are parsed but never interpreted by
// this module (spec §9): `#[langitem = "..."]` is retained verbatim,
// and this type exists only so a caller can find it again.
type AttributeList struct {
	attributes []ast.Attribute
}

// NewAttributeList wraps a parsed attribute slice.
func NewAttributeList(attrs []ast.Attribute) AttributeList {
	return AttributeList{attributes: attrs}
}

// Len returns the number of attributes in the list.
func (l AttributeList) Len() int {
	return len(l.attributes)
}

// Get returns the first attribute with the given name, or nil.
func (l AttributeList) Get(name string) *ast.Attribute {
	for i := range l.attributes {
		if l.attributes[i].Name == name {
			return &l.attributes[i]
		}
	}

	return nil
}

// Has reports whether an attribute with the given name is present.
func (l AttributeList) Has(name string) bool {
	return l.Get(name) != nil
}

// Values returns every value for attributes matching name, in
// declaration order, skipping valueless occurrences.
func (l AttributeList) Values(name string) []string {
	var values []string

	for _, a := range l.attributes {
		if a.Name == name && a.Value != nil {
			values = append(values, *a.Value)
		}
	}

	return values
}
