package statetree

import (
	"regexp"
	"regexp/syntax"
	"strings"

	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"
)

// Pathless returns a pattern that always matches without consuming segments.
func Pathless() Pattern {
	return Pattern{}
}

// Route returns the pattern of the given route. It panics if the route is
// invalid. See ParseRoute.
func Route(route string) Pattern {
	p, err := ParseRoute(route)
	if err != nil {
		panic(err.Error())
	}

	return p
}

// ParseRoute parses a route made of '/' separated parts. Each part is a
// literal, a parameter (":name") or, as the last part only, a wildcard
// ("*" or "*name"). An empty route is pathless.
func ParseRoute(route string) (Pattern, error) {
	trimmed := strings.Trim(route, "/")
	if len(trimmed) == 0 {
		return Pattern{}, nil
	}

	segments := strings.Split(trimmed, "/")
	parts := make([]part, 0, len(segments))

	for i, seg := range segments {
		switch {
		case len(seg) == 0:
			return Pattern{}, errors.New("empty segment in route '" + route + "'")

		case seg[0] == ':':
			if len(seg) < 2 {
				return Pattern{}, errors.New("parameters must be named with a non-empty name in route '" + route + "'")
			}

			parts = append(parts, part{kind: KindParameter, value: seg[1:]})

		case seg[0] == '*':
			if i != len(segments)-1 {
				return Pattern{}, errors.New("wildcard routes are only allowed at the end of the route '" + route + "'")
			}

			parts = append(parts, part{kind: KindWildcard, value: seg[1:]})

		default:
			parts = append(parts, part{kind: KindLiteral, value: seg})
		}
	}

	kind := KindSequence
	if len(parts) == 1 {
		kind = parts[0].kind
	}

	return Pattern{kind: kind, route: trimmed, parts: parts}, nil
}

// Regexp returns a regular expression pattern. It panics if expr does not
// compile. See CompileRegexp.
func Regexp(expr string, captures ...string) Pattern {
	p, err := CompileRegexp(expr, captures...)
	if err != nil {
		panic("invalid regular expression '" + expr + "': " + err.Error())
	}

	return p
}

// CompileRegexp returns a pattern testing expr, anchored at the start, against
// the remaining segments joined by '/'. The capture groups of a match are
// bound, in order, to the given capture names. Names without a group and
// groups without a name are left unbound.
func CompileRegexp(expr string, captures ...string) (Pattern, error) {
	re, err := regexp.Compile("^(?:" + expr + ")")
	if err != nil {
		return Pattern{}, err
	}

	return Pattern{
		kind:        KindRegexp,
		route:       expr,
		regex:       re,
		captures:    append([]string(nil), captures...),
		endAnchored: assertsEnd(expr),
	}, nil
}

// assertsEnd reports whether expr contains a '$' or '\z' assertion.
func assertsEnd(expr string) bool {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return false
	}

	var walk func(re *syntax.Regexp) bool

	walk = func(re *syntax.Regexp) bool {
		if re.Op == syntax.OpEndText || re.Op == syntax.OpEndLine {
			return true
		}

		for _, sub := range re.Sub {
			if walk(sub) {
				return true
			}
		}

		return false
	}

	return walk(re)
}

// Kind returns the kind of the pattern.
func (p Pattern) Kind() Kind {
	return p.kind
}

// Captures returns the capture names of a regular expression pattern.
func (p Pattern) Captures() []string {
	return append([]string(nil), p.captures...)
}

// String returns the route of the pattern. Regular expressions are wrapped
// in slashes and pathless patterns render as an empty string.
func (p Pattern) String() string {
	if p.kind == KindRegexp {
		return "/" + p.route + "/"
	}

	return p.route
}

// Match matches the pattern against the remaining segments of a location.
// Regular expressions report their longest match.
func (p Pattern) Match(segments []string) (Match, bool) {
	switch p.kind {
	case KindPathless:
		return Match{}, true
	case KindRegexp:
		matches := p.matchRegexp(segments)
		if len(matches) == 0 {
			return Match{}, false
		}

		return matches[0], true
	default:
		return p.matchParts(segments)
	}
}

// alternatives returns every way the pattern can match the segments, in the
// order the resolver must try them.
func (p Pattern) alternatives(segments []string) []Match {
	if p.kind == KindRegexp {
		return p.matchRegexp(segments)
	}

	m, ok := p.Match(segments)
	if !ok {
		return nil
	}

	return []Match{m}
}

func (p Pattern) matchParts(segments []string) (Match, bool) {
	var m Match

	for i, pt := range p.parts {
		switch pt.kind {
		case KindWildcard:
			if len(pt.value) > 0 {
				m.Params = m.Params.with(pt.value, strings.Join(segments[i:], string(Separator)))
			}

			m.Consumed = len(segments)

			return m, true

		case KindParameter:
			if i >= len(segments) {
				return Match{}, false
			}

			m.Params = m.Params.with(pt.value, segments[i])

		default:
			if i >= len(segments) || segments[i] != pt.value {
				return Match{}, false
			}
		}

		m.Consumed++
	}

	return m, true
}

// matchRegexp tests the expression against every prefix of the joined
// segments, longest first. A match counts the segments it reaches into, so
// one ending right after a separator does not count the segment that
// follows. Each result spans a distinct segment count. Expressions asserting
// the end of the text are only tested against the whole remainder.
func (p Pattern) matchRegexp(segments []string) []Match {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	starts := make([]int, len(segments))
	ends := make([]int, len(segments))

	for i, seg := range segments {
		if i > 0 {
			buf.WriteByte(Separator)
		}

		starts[i] = buf.Len()
		buf.WriteString(seg)
		ends[i] = buf.Len()
	}

	var matches []Match

	for n := len(segments); n >= 0; n-- {
		if p.endAnchored && n < len(segments) {
			break
		}

		var subject []byte
		if n > 0 {
			subject = buf.B[:ends[n-1]]
		}

		loc := p.regex.FindSubmatchIndex(subject)
		if loc == nil {
			continue
		}

		consumed := n

		if n > 0 && loc[1] <= starts[n-1] {
			if loc[1] < starts[n-1] {
				// A shorter prefix reports it.
				continue
			}

			consumed = n - 1
		}

		if len(matches) > 0 && matches[len(matches)-1].Consumed == consumed {
			continue
		}

		matches = append(matches, Match{
			Consumed: consumed,
			Params:   p.bindCaptures(subject, loc),
		})
	}

	return matches
}

func (p Pattern) bindCaptures(subject []byte, loc []int) Params {
	var params Params

	for i, name := range p.captures {
		group := (i + 1) * 2
		if group+1 >= len(loc) {
			break
		}

		if loc[group] < 0 {
			continue
		}

		params = params.with(name, string(subject[loc[group]:loc[group+1]]))
	}

	return params
}
