package theme

import (
	"os"
	"path/filepath"
)

// Dir is a dealer theme's filesystem root: <platform>/dealer-themes/<slug>/.
type Dir struct {
	Slug Slug
	Root string
}

// CommonDir is the shared, read-only common-theme root:
// <platform>/DealerInspireCommonTheme/.
type CommonDir struct {
	Root string
}

// NewDir resolves a dealer theme directory under a platform root.
func NewDir(platformRoot string, slug Slug) (Dir, error) {
	if err := slug.Validate(); err != nil {
		return Dir{}, err
	}
	return Dir{Slug: slug, Root: filepath.Join(platformRoot, "dealer-themes", string(slug))}, nil
}

// Exists reports whether the theme directory is present on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.Root)
	return err == nil && info.IsDir()
}

// LegacySheetCandidates lists the conventional legacy-sheet paths for a
// given logical source name, in the order they should be probed. The
// first one found on disk is used; spec.md documents both a flat and a
// css/-nested convention for the interior sheet.
func (d Dir) LegacySheetCandidates(name LegacySheetName) []string {
	switch name {
	case SheetDetail:
		return []string{filepath.Join(d.Root, "css", "lvdp.scss")}
	case SheetResults:
		return []string{filepath.Join(d.Root, "css", "lvrp.scss")}
	case SheetGlobal:
		return []string{filepath.Join(d.Root, "css", "style.scss")}
	case SheetInterior:
		return []string{
			filepath.Join(d.Root, "css", "inside.scss"),
			filepath.Join(d.Root, "inside.scss"),
		}
	default:
		return nil
	}
}

// ResolveLegacySheet returns the first existing candidate path for name,
// or "" with ok=false if none exist (a Missing-input condition — non-fatal
// per spec.md §7, the caller skips it).
func (d Dir) ResolveLegacySheet(name LegacySheetName) (path string, ok bool) {
	for _, candidate := range d.LegacySheetCandidates(name) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// FunctionsPath is the dealer's functions.php, scanned by the
// shortcode-functions detector alongside the common theme's own.
func (d Dir) FunctionsPath() string {
	return filepath.Join(d.Root, "functions.php")
}

// PartialsRoot is the dealer-side root that map partials get copied into.
func (d Dir) PartialsRoot() string {
	return filepath.Join(d.Root, "partials")
}

// TargetSheetPath returns the path of one of the three target sheets
// this migration produces at the theme directory root.
func (d Dir) TargetSheetPath(cat SheetKind) string {
	switch cat {
	case SheetKindInterior:
		return filepath.Join(d.Root, "sb-inside.scss")
	case SheetKindDetail:
		return filepath.Join(d.Root, "sb-vdp.scss")
	case SheetKindResults:
		return filepath.Join(d.Root, "sb-vrp.scss")
	default:
		return ""
	}
}

// TemplateFiles returns the dealer's top-level template files (front
// page, page templates) the template-parts detector scans. Missing
// files are silently skipped by the caller.
func (d Dir) TemplateFiles() []string {
	candidates := []string{"front-page.php", "page-templates.php", "page.php", "index.php"}
	var out []string
	for _, c := range candidates {
		p := filepath.Join(d.Root, c)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			out = append(out, p)
		}
	}
	return out
}

// RootStylesheetPath is the dealer's root stylesheet, scanned by the
// style-import detector for @import references into the common theme.
func (d Dir) RootStylesheetPath() string {
	if path, ok := d.ResolveLegacySheet(SheetGlobal); ok {
		return path
	}
	return filepath.Join(d.Root, "css", "style.scss")
}

// LegacySheetName enumerates the conventional legacy source sheets.
type LegacySheetName int

const (
	SheetDetail LegacySheetName = iota
	SheetResults
	SheetInterior
	SheetGlobal
)

// SheetKind enumerates the three target sheets produced by a migration.
type SheetKind int

const (
	SheetKindInterior SheetKind = iota
	SheetKindDetail
	SheetKindResults
)

func (k SheetKind) String() string {
	switch k {
	case SheetKindInterior:
		return "interior"
	case SheetKindDetail:
		return "detail"
	case SheetKindResults:
		return "results"
	default:
		return "unknown"
	}
}

// FunctionsPath is the common theme's shared functions file(s), scanned
// alongside the dealer's own by the shortcode-functions detector.
func (c CommonDir) FunctionsPath() string {
	return filepath.Join(c.Root, "functions.php")
}

// PartialPath resolves a Map Partial Reference (relative to partials/)
// to an absolute path under the common theme. relPath never carries an
// extension — get_template_part() references are always extension-less
// while the file on disk is PHP — so ".php" is appended here.
func (c CommonDir) PartialPath(relPath string) string {
	return filepath.Join(c.Root, "partials", relPath+".php")
}

// StylePath resolves the style module naming convention
// (_<basename>.scss) for a given partial reference's directory.
func (c CommonDir) StylePath(relPath string) string {
	dir := filepath.Dir(relPath)
	base := filepath.Base(relPath)
	return filepath.Join(c.Root, "styles", dir, "_"+base+".scss")
}
