package rewrite

import (
	"regexp"
	"strings"
)

// includeCallPattern finds "@include <name>(" call sites, and bare
// "@include <name>" calls with no argument list; for the former the
// matching close paren is then found by balanced scanning, since legacy
// mixin arguments can themselves contain parens (e.g.
// transform(translateX(10px))).
var includeCallPattern = regexp.MustCompile(`@include\s+([a-zA-Z][a-zA-Z0-9-]*)(\s*\()?`)

// rewriteSimpleIncludes rewrites every "@include name(args);" or bare
// "@include name;" call whose name is in handlers, leaving unrecognized
// @include calls untouched for a later group or for the Validator to flag.
func rewriteSimpleIncludes(text string, handlers map[string]func(args []string) string) string {
	var b strings.Builder
	pos := 0

	for {
		loc := includeCallPattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			b.WriteString(text[pos:])
			break
		}
		matchStart := pos + loc[0]
		name := text[pos+loc[2] : pos+loc[3]]

		handler, ok := handlers[name]
		if !ok {
			b.WriteString(text[pos : pos+loc[1]])
			pos += loc[1]
			continue
		}

		if loc[4] == -1 {
			// bare call with no argument list, e.g. "@include flexbox;"
			b.WriteString(text[pos:matchStart])
			b.WriteString(handler(nil))
			pos = skipOptionalTrailingSemicolon(text, pos+loc[3])
			continue
		}

		openParenIdx := pos + loc[1] - 1
		closeParenIdx := findMatchingParen(text, openParenIdx)
		if closeParenIdx == -1 {
			b.WriteString(text[pos : pos+loc[1]])
			pos += loc[1]
			continue
		}

		argsText := text[openParenIdx+1 : closeParenIdx]
		args := splitArgsTopLevel(argsText)

		end := closeParenIdx + 1
		end = skipOptionalTrailingSemicolon(text, end)

		b.WriteString(text[pos:matchStart])
		b.WriteString(handler(args))
		pos = end
	}

	return b.String()
}

// rewriteBreakpointIncludes rewrites "@include breakpoint('key') { body }"
// into "@media (<query>) { body }" using the named-breakpoint table.
// The body is passed through untouched by this rule; other rules in the
// catalog apply to it independently since it is ordinary top-level text.
func rewriteBreakpointIncludes(text string, table map[string]string) string {
	pattern := regexp.MustCompile(`@include\s+breakpoint\s*\(\s*['"]([a-zA-Z-]+)['"]\s*\)\s*`)

	var b strings.Builder
	pos := 0
	for {
		loc := pattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			b.WriteString(text[pos:])
			break
		}
		matchStart := pos + loc[0]
		matchEnd := pos + loc[1]
		key := text[pos+loc[2] : pos+loc[3]]

		j := matchEnd
		for j < len(text) && isSpaceByte(text[j]) {
			j++
		}
		if j >= len(text) || text[j] != '{' {
			// not followed by a block; leave untouched for the validator
			// to flag as an unresolved legacy construct.
			b.WriteString(text[pos:matchEnd])
			pos = matchEnd
			continue
		}

		query, ok := table[key]
		if !ok {
			b.WriteString(text[pos:matchEnd])
			pos = matchEnd
			continue
		}

		b.WriteString(text[pos:matchStart])
		b.WriteString("@media (")
		b.WriteString(query)
		b.WriteString(") ")
		pos = j
	}
	return b.String()
}

func findMatchingParen(text string, openIdx int) int {
	depth := 0
	for i := openIdx; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func skipOptionalTrailingSemicolon(text string, pos int) int {
	j := pos
	for j < len(text) && isSpaceByte(text[j]) {
		j++
	}
	if j < len(text) && text[j] == ';' {
		return j + 1
	}
	return pos
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// splitArgsTopLevel splits a mixin argument list on commas that are not
// nested inside parens, trimming whitespace from each argument.
func splitArgsTopLevel(s string) []string {
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
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	tail := strings.TrimSpace(s[start:])
	if tail != "" || len(parts) > 0 {
		parts = append(parts, tail)
	}
	return parts
}
