package style

import (
	"regexp"
	"strings"
)

// Block is a contiguous span of top-level source text: either a rule
// (selector list + balanced braces) or a standalone comment/directive.
// Nested content is preserved verbatim inside Raw; only top-level blocks
// are tokenized and classified (spec.md's Style Block invariant).
type Block struct {
	// Raw is the full source text of the block, including any leading
	// comment that was attached to it (see attachLeadingComments).
	Raw string
	// Selectors is the comma-split (outside-parens) top-level selector
	// list. Empty for comment-only and selector-less blocks.
	Selectors []string
	// IsComment marks a standalone comment block with no attached rule.
	IsComment bool
	// IsTicket marks a ticket-marker-wrapped region, classified as one
	// unit regardless of its internal structure.
	IsTicket bool
}

var (
	ticketStartPattern = regexp.MustCompile(`(?i)^//\s*\d+.*\bstart\b`)
	ticketEndPattern   = regexp.MustCompile(`(?i)^//\s*\d+.*\bend\b`)
)

// chunkKind distinguishes the three raw spans the low-level scanner
// produces, before leading comments are attached to following rules.
type chunkKind int

const (
	chunkRule chunkKind = iota
	chunkComment
	chunkTicket
)

type chunk struct {
	kind chunkKind
	raw  string
}

// Tokenize splits source into top-level Style Blocks: a brace-balancing
// scanner that treats single- and multi-line comments as pass-through
// and detects ticket-marker regions as one block (spec.md §4.4 step 3).
func Tokenize(src string) []Block {
	chunks := scanChunks(src)
	return attachLeadingComments(chunks)
}

func scanChunks(src string) []chunk {
	var chunks []chunk
	i, n := 0, len(src)

	for i < n {
		// skip leading whitespace between chunks
		for i < n && isSpace(src[i]) {
			i++
		}
		if i >= n {
			break
		}

		if strings.HasPrefix(src[i:], "//") {
			lineEnd := indexOrEnd(src, i, '\n')
			line := src[i:lineEnd]

			if ticketStartPattern.MatchString(strings.TrimSpace(line)) {
				end := findTicketEnd(src, lineEnd)
				chunks = append(chunks, chunk{kind: chunkTicket, raw: src[i:end]})
				i = end
				continue
			}

			chunks = append(chunks, chunk{kind: chunkComment, raw: line})
			i = lineEnd
			continue
		}

		if strings.HasPrefix(src[i:], "/*") {
			end := strings.Index(src[i+2:], "*/")
			if end == -1 {
				// unterminated comment: consume to EOF, validator will
				// flag this as a Parse error.
				chunks = append(chunks, chunk{kind: chunkComment, raw: src[i:]})
				i = n
				continue
			}
			end = i + 2 + end + 2
			chunks = append(chunks, chunk{kind: chunkComment, raw: src[i:end]})
			i = end
			continue
		}

		// a rule: consume selector text up to the first top-level '{',
		// then balance braces (string/comment aware) to find the end.
		end := scanRule(src, i)
		chunks = append(chunks, chunk{kind: chunkRule, raw: strings.TrimRight(src[i:end], " \t\n")})
		i = end
	}

	return chunks
}

// findTicketEnd scans forward from pos looking for a line matching the
// ticket end marker. If none is found, the region runs to EOF.
func findTicketEnd(src string, pos int) int {
	n := len(src)
	for pos < n {
		lineEnd := indexOrEnd(src, pos, '\n')
		line := strings.TrimSpace(src[pos:lineEnd])
		if ticketEndPattern.MatchString(line) {
			return lineEnd
		}
		if lineEnd >= n {
			return n
		}
		pos = lineEnd + 1
	}
	return n
}

// scanRule finds the end of one top-level rule starting at pos: the
// selector text plus a brace-balanced body. If no '{' appears before
// the next logical break, the remaining buffer to EOF is returned as a
// single trailing rule (e.g. a stray declaration-less tail).
func scanRule(src string, pos int) int {
	n := len(src)
	i := pos
	depth := 0
	seenBrace := false

	for i < n {
		c := src[i]

		switch {
		case c == '\'' || c == '"':
			i = skipString(src, i)
			continue
		case strings.HasPrefix(src[i:], "/*"):
			idx := strings.Index(src[i+2:], "*/")
			if idx == -1 {
				return n
			}
			i = i + 2 + idx + 2
			continue
		case strings.HasPrefix(src[i:], "//") && depth == 0 && !seenBrace:
			// a line comment before any '{' ends the selector scan only
			// if it terminates without ever opening a rule; treat as
			// part of a selector-less chunk boundary.
			i = indexOrEnd(src, i, '\n')
			continue
		case c == '{':
			depth++
			seenBrace = true
			i++
		case c == '}':
			if depth > 0 {
				depth--
			}
			i++
			if seenBrace && depth == 0 {
				return i
			}
		default:
			i++
		}
	}

	return n
}

func skipString(src string, pos int) int {
	quote := src[pos]
	i := pos + 1
	n := len(src)
	for i < n {
		if src[i] == '\\' {
			i += 2
			continue
		}
		if src[i] == quote {
			return i + 1
		}
		i++
	}
	return n
}

func indexOrEnd(src string, pos int, sep byte) int {
	idx := strings.IndexByte(src[pos:], sep)
	if idx == -1 {
		return len(src)
	}
	return pos + idx
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// attachLeadingComments folds a standalone comment chunk into the
// following rule chunk (spec.md §4.1 step 5: "comments immediately
// preceding a rule attach to that rule"), and splits out selectors for
// rule/ticket chunks.
func attachLeadingComments(chunks []chunk) []Block {
	var blocks []Block
	var pendingComment string

	flushPendingAsStandalone := func() {
		if pendingComment != "" {
			blocks = append(blocks, Block{Raw: pendingComment, IsComment: true})
			pendingComment = ""
		}
	}

	for i, c := range chunks {
		switch c.kind {
		case chunkComment:
			// a comment attaches to the next rule only if one follows
			// immediately; if this is the last chunk, or the next chunk
			// is itself another comment, it stands alone.
			if i+1 < len(chunks) && chunks[i+1].kind != chunkComment {
				pendingComment += c.raw + "\n"
			} else {
				flushPendingAsStandalone()
				blocks = append(blocks, Block{Raw: c.raw, IsComment: true})
			}
		case chunkTicket:
			raw := pendingComment + c.raw
			pendingComment = ""
			blocks = append(blocks, Block{Raw: raw, IsTicket: true})
		case chunkRule:
			raw := pendingComment + c.raw
			pendingComment = ""
			blocks = append(blocks, Block{Raw: raw, Selectors: extractSelectors(c.raw)})
		}
	}
	flushPendingAsStandalone()

	return blocks
}

// extractSelectors pulls the text before the first top-level '{' and
// splits it on commas that are not nested inside parentheses. An at-rule
// head (e.g. "@media (...)") is not a selector list, so such a block is
// selector-less.
func extractSelectors(raw string) []string {
	brace := strings.IndexByte(raw, '{')
	if brace == -1 {
		return nil
	}
	head := strings.TrimSpace(raw[:brace])
	if head == "" || strings.HasPrefix(head, "@") {
		return nil
	}
	return splitOutsideParens(head, ',')
}

func splitOutsideParens(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))

	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
