package rewrite

import "regexp"

// targetImagesDir is the fixed destination for every legacy image
// reference, regardless of how deep the original relative path was
// (spec.md §4.2 Paths row).
const targetImagesDir = "/wp-content/themes/DealerInspireDealerTheme/images"

// legacyImagePattern matches the quoted and unquoted url(...) forms,
// capturing the final images/<rest> segment so the leading ../ climbing
// (however many levels) is discarded. A relative path outside url(...)
// is not matched.
var legacyImagePattern = regexp.MustCompile(`url\(\s*['"]?(?:\.\./)*(?:[^'")]*/)?images/([^'")]+)['"]?\s*\)`)

// ApplyPaths runs the Paths catalog group: any url() reference that
// resolves under an images/ directory is rewritten to the fixed target
// theme images path, dropping whatever relative climb the legacy
// stylesheet used to reach it.
func ApplyPaths(text string) string {
	return legacyImagePattern.ReplaceAllString(text, "url('"+targetImagesDir+"/${1}')")
}
