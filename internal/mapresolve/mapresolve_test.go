package mapresolve

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dealerinspire/sbm/internal/oem"
	"github.com/dealerinspire/sbm/internal/style/rewrite"
	"github.com/dealerinspire/sbm/internal/theme"
)

func stellantisPolicy(t *testing.T) oem.Policy {
	t.Helper()
	policies, err := oem.LoadPolicyDefs()
	if err != nil {
		t.Fatalf("LoadPolicyDefs: %v", err)
	}
	for _, p := range policies {
		if p.BrandKey == "Stellantis" {
			return p
		}
	}
	t.Fatal("Stellantis policy not found in embedded catalog")
	return oem.Policy{}
}

func mustCatalog(t *testing.T) *rewrite.Catalog {
	t.Helper()
	c, err := rewrite.NewCatalog(nil)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

// setupCommonTheme builds a minimal common theme tree with a functions
// file registering a shortcode, the referenced partial, and its style
// module.
func setupCommonTheme(t *testing.T) theme.CommonDir {
	t.Helper()
	root := t.TempDir()

	functionsBody := `<?php
add_shortcode('full-map', 'stellantis_full_map');
function stellantis_full_map() {
    get_template_part('partials/dealer-groups/fca/map-row-2');
}
`
	if err := os.WriteFile(filepath.Join(root, "functions.php"), []byte(functionsBody), 0644); err != nil {
		t.Fatalf("WriteFile functions.php: %v", err)
	}

	partialPath := filepath.Join(root, "partials", "dealer-groups", "fca", "map-row-2.php")
	if err := os.MkdirAll(filepath.Dir(partialPath), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(partialPath, []byte("<div>map row 2</div>"), 0644); err != nil {
		t.Fatalf("WriteFile partial: %v", err)
	}

	stylePath := filepath.Join(root, "styles", "dealer-groups", "fca", "_map-row-2.scss")
	if err := os.MkdirAll(filepath.Dir(stylePath), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(stylePath, []byte(".map-row-2 { @include flexbox; }"), 0644); err != nil {
		t.Fatalf("WriteFile style: %v", err)
	}

	return theme.CommonDir{Root: root}
}

func setupDealerTheme(t *testing.T, withFrontPageCall, withStyleImport bool) theme.Dir {
	t.Helper()
	platformRoot := t.TempDir()
	dir, err := theme.NewDir(platformRoot, theme.Slug("fca-test-dealer"))
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir.Root, "css"), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(dir.FunctionsPath(), []byte("<?php\n"), 0644); err != nil {
		t.Fatalf("WriteFile dealer functions.php: %v", err)
	}

	if withFrontPageCall {
		content := "<?php get_template_part('partials/dealer-groups/fca/map-row-2'); ?>"
		if err := os.WriteFile(filepath.Join(dir.Root, "front-page.php"), []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile front-page.php: %v", err)
		}
	}

	rootStylesheet := filepath.Join(dir.Root, "css", "style.scss")
	styleContent := ".x { color: red; }"
	if withStyleImport {
		styleContent = `@import 'dealer-groups/fca/_map-row-2';` + "\n" + styleContent
	}
	if err := os.WriteFile(rootStylesheet, []byte(styleContent), 0644); err != nil {
		t.Fatalf("WriteFile style.scss: %v", err)
	}

	return dir
}

// Concrete scenario 4: shortcode detection copies the partial and
// appends its rewritten style under the expected header comment.
func TestResolve_ShortcodeDetection(t *testing.T) {
	common := setupCommonTheme(t)
	dealer := setupDealerTheme(t, false, false)
	policy := stellantisPolicy(t)

	result, err := Resolve(dealer, common, policy, mustCatalog(t))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(result.Outcomes) != 1 {
		t.Fatalf("expected exactly one outcome, got %d", len(result.Outcomes))
	}
	if !result.Outcomes[0].Copied {
		t.Fatalf("expected the partial to be copied")
	}

	dst := filepath.Join(dealer.PartialsRoot(), "dealer-groups", "fca", "map-row-2.php")
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading copied partial: %v", err)
	}
	if string(data) != "<div>map row 2</div>" {
		t.Fatalf("copied partial is not byte-identical to the source")
	}

	if !strings.Contains(result.InteriorAppend, "/* Migrated from CommonTheme:") {
		t.Fatalf("expected the expected header comment, got: %s", result.InteriorAppend)
	}
	if !strings.Contains(result.InteriorAppend, "display: flex;") {
		t.Fatalf("expected the style module to pass through the Rewriter, got: %s", result.InteriorAppend)
	}
}

// Concrete scenario 5: style-import-only detection (no template-part
// call, no shortcode match) still produces the reference exactly once.
func TestResolve_StyleImportOnlyDetection(t *testing.T) {
	common := setupCommonTheme(t)
	// Drop the shortcode registration so only the style import can match.
	if err := os.WriteFile(filepath.Join(common.Root, "functions.php"), []byte("<?php\n"), 0644); err != nil {
		t.Fatalf("WriteFile functions.php: %v", err)
	}
	dealer := setupDealerTheme(t, false, true)
	policy := stellantisPolicy(t)

	result, err := Resolve(dealer, common, policy, mustCatalog(t))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(result.Outcomes) != 1 {
		t.Fatalf("expected exactly one outcome, got %d", len(result.Outcomes))
	}
	if result.Outcomes[0].Ref.Source != "style-import" {
		t.Fatalf("unexpected source: %s", result.Outcomes[0].Ref.Source)
	}
}

// P5: duplicate references (here: shortcode-functions AND
// template-parts both surface the same partial) resolve to exactly one
// copy and exactly one style append.
func TestResolve_DedupAcrossDetectors(t *testing.T) {
	common := setupCommonTheme(t)
	dealer := setupDealerTheme(t, true, true)
	policy := stellantisPolicy(t)

	result, err := Resolve(dealer, common, policy, mustCatalog(t))
	require.NoError(t, err)
	require.Lenf(t, result.Outcomes, 1, "P5 violation: expected exactly one outcome for a duplicated reference")
	require.Equalf(t, 1, strings.Count(result.InteriorAppend, "Migrated from CommonTheme"),
		"P5 violation: expected exactly one style append, got text: %s", result.InteriorAppend)
}

// Idempotent copy: running Resolve twice does not overwrite or
// duplicate the already-copied partial.
func TestResolve_SecondRunSkipsExistingCopy(t *testing.T) {
	common := setupCommonTheme(t)
	dealer := setupDealerTheme(t, false, false)
	policy := stellantisPolicy(t)

	if _, err := Resolve(dealer, common, policy, mustCatalog(t)); err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	result, err := Resolve(dealer, common, policy, mustCatalog(t))
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if result.Outcomes[0].Copied {
		t.Fatalf("expected the second run to skip an already-copied partial")
	}
}

// Concrete scenario 6: a non-branded dealer's Default policy has no
// shortcode/partial patterns pointed at any branded module, so no
// partials are discovered.
func TestResolve_NonBrandedDealerFindsNothing(t *testing.T) {
	common := setupCommonTheme(t)
	dealer := setupDealerTheme(t, false, false)

	policies, err := oem.LoadPolicyDefs()
	if err != nil {
		t.Fatalf("LoadPolicyDefs: %v", err)
	}
	var def oem.Policy
	for _, p := range policies {
		if p.BrandKey == "Default" {
			def = p
		}
	}

	result, err := Resolve(dealer, common, def, mustCatalog(t))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(result.Outcomes) != 0 {
		t.Fatalf("expected no map references for a non-branded dealer, got %d", len(result.Outcomes))
	}
}
