// package rewrite implements the Text Rewriter (component B): the fixed
// substitution catalog applied to Style Block text in a specified
// order, never touching string literals or single-line comments.
package rewrite

import "strings"

// segment is a span of text, marked literal when it must never be
// rewritten (a quoted string or a single-line comment).
type segment struct {
	text    string
	literal bool
}

// splitSafeSegments walks text once and splits it into alternating
// rewritable / literal spans, so every rule in the catalog can apply
// its regex only to rewritable text (spec.md §4.2: "a rewrite that
// would change text inside a string literal or single-line comment
// must be skipped").
func splitSafeSegments(text string) []segment {
	var segs []segment
	n := len(text)
	start := 0
	i := 0

	flush := func(end int) {
		if end > start {
			segs = append(segs, segment{text: text[start:end]})
		}
	}

	for i < n {
		switch {
		case text[i] == '\'' || text[i] == '"':
			flush(i)
			end := skipString(text, i)
			segs = append(segs, segment{text: text[i:end], literal: true})
			i, start = end, end
		case strings.HasPrefix(text[i:], "//"):
			flush(i)
			end := indexOrEnd(text, i, '\n')
			segs = append(segs, segment{text: text[i:end], literal: true})
			i, start = end, end
		case strings.HasPrefix(text[i:], "/*"):
			flush(i)
			idx := strings.Index(text[i+2:], "*/")
			var end int
			if idx == -1 {
				end = n
			} else {
				end = i + 2 + idx + 2
			}
			segs = append(segs, segment{text: text[i:end], literal: true})
			i, start = end, end
		default:
			i++
		}
	}
	flush(n)

	return segs
}

func skipString(text string, pos int) int {
	quote := text[pos]
	i := pos + 1
	n := len(text)
	for i < n {
		if text[i] == '\\' {
			i += 2
			continue
		}
		if text[i] == quote {
			return i + 1
		}
		i++
	}
	return n
}

func indexOrEnd(text string, pos int, sep byte) int {
	idx := strings.IndexByte(text[pos:], sep)
	if idx == -1 {
		return len(text)
	}
	return pos + idx
}

// applyOutsideLiterals applies fn to every non-literal segment of text
// and reassembles the result, leaving literal segments untouched.
func applyOutsideLiterals(text string, fn func(string) string) string {
	segs := splitSafeSegments(text)
	var b strings.Builder
	for _, s := range segs {
		if s.literal {
			b.WriteString(s.text)
		} else {
			b.WriteString(fn(s.text))
		}
	}
	return b.String()
}

// splitCommentSegments walks text once and splits it into alternating
// rewritable / literal spans, treating only single-line and block
// comments as literal — unlike splitSafeSegments, quoted strings are
// NOT cut out here. Rules whose pattern is anchored on a keyword that
// itself spans a quoted argument (@include name('arg'), url('...'))
// need to see the quotes as ordinary text to match the construct as a
// whole; comments still must never be rewritten into regardless.
func splitCommentSegments(text string) []segment {
	var segs []segment
	n := len(text)
	start := 0
	i := 0

	flush := func(end int) {
		if end > start {
			segs = append(segs, segment{text: text[start:end]})
		}
	}

	for i < n {
		switch {
		case strings.HasPrefix(text[i:], "//"):
			flush(i)
			end := indexOrEnd(text, i, '\n')
			segs = append(segs, segment{text: text[i:end], literal: true})
			i, start = end, end
		case strings.HasPrefix(text[i:], "/*"):
			flush(i)
			idx := strings.Index(text[i+2:], "*/")
			var end int
			if idx == -1 {
				end = n
			} else {
				end = i + 2 + idx + 2
			}
			segs = append(segs, segment{text: text[i:end], literal: true})
			i, start = end, end
		default:
			i++
		}
	}
	flush(n)

	return segs
}

// applyOutsideComments is applyOutsideLiterals's counterpart for rules
// that must see quoted arguments whole (see splitCommentSegments).
func applyOutsideComments(text string, fn func(string) string) string {
	segs := splitCommentSegments(text)
	var b strings.Builder
	for _, s := range segs {
		if s.literal {
			b.WriteString(s.text)
		} else {
			b.WriteString(fn(s.text))
		}
	}
	return b.String()
}
