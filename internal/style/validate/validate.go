// Package validate implements the Syntax Validator (component C):
// accepts or rejects a candidate sheet buffer, offering the one
// well-defined repair spec.md §4.3 allows (trimming trailing excess
// closing braces) before judging it. No general style-language grammar
// exists anywhere in the reference corpus this module was grounded on,
// so validation is structural rather than a real compiler frontend:
// brace balance, open string/comment detection, and leftover
// unresolved @include calls the Rewriter couldn't handle.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Diagnostic is one validation failure: a line number (1-indexed) and a
// human-readable message, per spec.md §6 ("Diagnostics include file,
// line, and a human-readable message").
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Result is the Validator's verdict for one buffer.
type Result struct {
	OK          bool
	Repaired    bool
	Buffer      string
	Diagnostics []Diagnostic
}

var leftoverIncludePattern = regexp.MustCompile(`@include\s+[a-zA-Z][a-zA-Z0-9-]*\s*\(`)

// Validate runs the repair-then-check contract of spec.md §4.3 over buf
// and returns a verdict. A buffer that fails is never written by the
// caller; the pre-existing file (if any) is left untouched.
func Validate(buf string) Result {
	repaired, trimmed := repairTrailingExcessBraces(buf)

	var diags []Diagnostic
	if d, ok := checkBraceBalance(repaired); !ok {
		diags = append(diags, d)
	}
	diags = append(diags, checkUnterminatedLiterals(repaired)...)
	diags = append(diags, checkLeftoverIncludes(repaired)...)

	return Result{
		OK:          len(diags) == 0,
		Repaired:    trimmed,
		Buffer:      repaired,
		Diagnostics: diags,
	}
}

// repairTrailingExcessBraces implements the single well-defined repair
// spec.md §4.3 permits: when closing braces outnumber opening braces,
// strip the trailing excess "}" characters that appear at end-of-file
// after whitespace. Applied at most once, and only to a buffer the
// literal-aware checkBraceBalance finds unbalanced, so a brace inside a
// string or comment never triggers the trim.
func repairTrailingExcessBraces(buf string) (string, bool) {
	if _, ok := checkBraceBalance(buf); ok {
		return buf, false
	}
	open := strings.Count(buf, "{")
	closeCount := strings.Count(buf, "}")
	excess := closeCount - open
	if excess <= 0 {
		return buf, false
	}

	trimmed := strings.TrimRight(buf, " \t\r\n")
	removed := 0
	i := len(trimmed)
	for i > 0 && removed < excess {
		c := trimmed[i-1]
		if c == '}' {
			i--
			removed++
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i--
			continue
		}
		break
	}
	if removed == 0 {
		return buf, false
	}
	return trimmed[:i] + "\n", true
}

// checkBraceBalance counts braces outside string literals and comments,
// matching the Tokenizer's own literal-aware brace scanning so a "}"
// inside quoted content text never looks like a structural imbalance.
func checkBraceBalance(buf string) (Diagnostic, bool) {
	depth := 0
	line := 1
	n := len(buf)
	for i := 0; i < n; i++ {
		switch {
		case buf[i] == '\n':
			line++
		case buf[i] == '\'' || buf[i] == '"':
			quote := buf[i]
			j := i + 1
			for j < n {
				if buf[j] == '\n' {
					line++
				}
				if buf[j] == '\\' {
					j += 2
					continue
				}
				if buf[j] == quote {
					j++
					break
				}
				j++
			}
			i = j - 1
		case strings.HasPrefix(buf[i:], "/*"):
			idx := strings.Index(buf[i+2:], "*/")
			if idx == -1 {
				i = n
				break
			}
			end := i + 2 + idx + 2
			line += strings.Count(buf[i:end], "\n")
			i = end - 1
		case strings.HasPrefix(buf[i:], "//"):
			idx := strings.IndexByte(buf[i:], '\n')
			if idx == -1 {
				i = n
			} else {
				i += idx
				line++
			}
		case buf[i] == '{':
			depth++
		case buf[i] == '}':
			depth--
			if depth < 0 {
				return Diagnostic{Line: line, Message: "unmatched closing brace"}, false
			}
		}
	}
	if depth != 0 {
		return Diagnostic{Line: line, Message: fmt.Sprintf("%d unclosed brace(s) at end of file", depth)}, false
	}
	return Diagnostic{}, true
}

// checkUnterminatedLiterals flags a string or block comment that never
// closes before end-of-file — a Parse-class failure per spec.md §7
// ("unterminated comment").
func checkUnterminatedLiterals(buf string) []Diagnostic {
	var diags []Diagnostic
	line := 1
	n := len(buf)
	for i := 0; i < n; i++ {
		switch {
		case buf[i] == '\n':
			line++
		case buf[i] == '\'' || buf[i] == '"':
			quote := buf[i]
			startLine := line
			j := i + 1
			closed := false
			for j < n {
				if buf[j] == '\n' {
					line++
				}
				if buf[j] == '\\' {
					j += 2
					continue
				}
				if buf[j] == quote {
					closed = true
					break
				}
				j++
			}
			if !closed {
				diags = append(diags, Diagnostic{Line: startLine, Message: "unterminated string literal"})
			}
			i = j
		case strings.HasPrefix(buf[i:], "/*"):
			startLine := line
			idx := strings.Index(buf[i+2:], "*/")
			if idx == -1 {
				diags = append(diags, Diagnostic{Line: startLine, Message: "unterminated block comment"})
				return diags
			}
			end := i + 2 + idx + 2
			line += strings.Count(buf[i:end], "\n")
			i = end - 1
		case strings.HasPrefix(buf[i:], "//"):
			idx := strings.IndexByte(buf[i:], '\n')
			if idx == -1 {
				i = n
			} else {
				i += idx
				line++
			}
		}
	}
	return diags
}

// checkLeftoverIncludes flags any @include call the Rewriter didn't
// resolve — an unrecognized mixin name is not a Parse failure on its
// own, but it is a construct the target dialect cannot express, so it
// fails validation rather than being written silently.
func checkLeftoverIncludes(buf string) []Diagnostic {
	var diags []Diagnostic
	for _, loc := range leftoverIncludePattern.FindAllStringIndex(buf, -1) {
		line := 1 + strings.Count(buf[:loc[0]], "\n")
		name := strings.TrimSpace(strings.TrimSuffix(buf[loc[0]:loc[1]], "("))
		diags = append(diags, Diagnostic{
			Line:    line,
			Message: fmt.Sprintf("unresolved legacy construct: %s(...)", name),
		})
	}
	return diags
}
