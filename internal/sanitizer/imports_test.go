package sanitizer

import (
	"testing"

	"github.com/adnankoroth/cliflow-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{
		"spec.mjs":              "",
		"literal":               "",
		"only-mjs.mjs":          "",
		"only-js.js":            "",
		"both.mjs":              "",
		"both.js":               "",
		"dir-mjs/index.mjs":     "",
		"dir-js/index.js":       "",
		"nested/child.mjs":      "",
		"with-query.mjs":        "",
		"dir-and-file.mjs":      "",
		"dir-and-file/index.js": "",
	})
	importer := root.Path("spec.mjs")

	tests := []struct {
		specifier string
		expected  string
		changed   bool
	}{
		{"./literal", "./literal", false},
		{"./only-mjs", "./only-mjs.mjs", true},
		{"./only-js", "./only-js.js", true},
		{"./both", "./both.mjs", true},
		{"./dir-mjs", "./dir-mjs/index.mjs", true},
		{"./dir-js", "./dir-js/index.js", true},
		{"./dir-and-file", "./dir-and-file.mjs", true},
		{"./nested/child", "./nested/child.mjs", true},
		{"./with-query?raw", "./with-query.mjs?raw", true},
		{"./with-query#frag", "./with-query.mjs#frag", true},
		{"./missing", "./missing", false},
		{"./only-mjs.mjs", "./only-mjs.mjs", false},
		{"./only-js.js", "./only-js.js", false},
		{"./data.json", "./data.json", false},
		{"./dir-mjs/", "./dir-mjs/", false},
		{"lodash", "lodash", false},
		{"@withfig/autocomplete-generators", "@withfig/autocomplete-generators", false},
		{"/abs/path", "/abs/path", false},
	}
	for _, tt := range tests {
		t.Run(tt.specifier, func(t *testing.T) {
			resolver := NewImportResolver()
			got, changed := resolver.Resolve(importer, tt.specifier)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestResolveParentDirectory(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{
		"aws/s3.mjs":     "",
		"shared/util.js": "",
	})
	resolver := NewImportResolver()
	got, changed := resolver.Resolve(root.Path("aws/s3.mjs"), "../shared/util")
	assert.True(t, changed)
	assert.Equal(t, "../shared/util.js", got)
}

func TestRewriteImports(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{
		"spec.mjs":             "",
		"helpers.mjs":          "",
		"generators/index.mjs": "",
		"side-effect.js":       "",
		"lazy.mjs":             "",
		"already.mjs":          "",
	})
	importer := root.Path("spec.mjs")

	input := `import { a } from "./helpers";
import * as gen from './generators';
import "./side-effect";
export { b } from "./helpers";
export * from "./already.mjs";
import x from "fig-helpers";
const lazy = () => import("./lazy");
const missing = () => import('./missing');
`
	expected := `import { a } from "./helpers.mjs";
import * as gen from './generators/index.mjs';
import "./side-effect.js";
export { b } from "./helpers.mjs";
export * from "./already.mjs";
import x from "fig-helpers";
const lazy = () => import("./lazy.mjs");
const missing = () => import('./missing');
`
	resolver := NewImportResolver()
	once := resolver.RewriteImports(importer, input)
	assert.Equal(t, expected, once)
	assert.Equal(t, once, resolver.RewriteImports(importer, once))
}

func TestRewriteImportsIgnoresMismatchedQuotes(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{"spec.mjs": "", "helpers.mjs": ""})
	input := `const s = "from './helpers\"";` + "\n"
	assert.Equal(t, input, NewImportResolver().RewriteImports(root.Path("spec.mjs"), input))
}

func TestCollectEditsRecordsKinds(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{"spec.mjs": "", "a.mjs": "", "b.mjs": "", "c.mjs": ""})
	text := "import \"./a\";\nexport * from \"./b\";\nimport(\"./c\");\n"
	edits := NewImportResolver().collectEdits(root.Path("spec.mjs"), text)
	require.Len(t, edits, 3)

	kinds := map[string]importKind{}
	for _, e := range edits {
		kinds[e.specifier] = e.kind
		assert.Equal(t, e.specifier, text[e.start:e.end])
		assert.Equal(t, "\"", e.quote)
	}
	assert.Equal(t, importSideEffect, kinds["./a"])
	assert.Equal(t, importFrom, kinds["./b"])
	assert.Equal(t, importDynamic, kinds["./c"])
}

func TestProbeCache(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{"spec.mjs": ""})
	resolver := NewImportResolver()
	importer := root.Path("spec.mjs")

	_, changed := resolver.Resolve(importer, "./late")
	assert.False(t, changed)

	// a cached miss lives as long as the resolver
	root.WriteFile("late.mjs", "")
	_, changed = resolver.Resolve(importer, "./late")
	assert.False(t, changed)

	_, changed = NewImportResolver().Resolve(importer, "./late")
	assert.True(t, changed)
}
