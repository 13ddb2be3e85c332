// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package statetree resolves locations against a tree of named states and
// computes the ordered exit/enter sequence between two resolutions.
package statetree

// Separator separates the segments of a location.
const Separator = '/'

// NotFoundName is the name of the reserved top-level state entered when a
// location resolves to nothing else.
const NotFoundName = "404"

// idSeparator joins state names into a state ID.
const idSeparator = "."

const (
	// KindPathless is a state without a route. It matches without consuming.
	KindPathless Kind = iota
	// KindLiteral matches one fixed segment.
	KindLiteral
	// KindParameter matches one segment and binds it (":name").
	KindParameter
	// KindWildcard matches every remaining segment ("*" or "*name").
	KindWildcard
	// KindSequence is a route made of several literal/parameter parts,
	// optionally ending with a wildcard (e.g. "posts/:postId").
	KindSequence
	// KindRegexp is a regular expression tested against the joined remainder.
	KindRegexp
)

const (
	// Unmatched means no state consumed the location and no fallback exists.
	Unmatched Outcome = iota
	// Matched means a leaf state consumed the whole location.
	Matched
	// NotFound means the reserved 404 state was resolved as a fallback.
	NotFound
)
