package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspileStripsTypes(t *testing.T) {
	source := "interface Opt { name: string; isOptional?: boolean }\n" +
		"type Gen = Fig.Generator;\n" +
		"export const gitSpec: Fig.Spec = { name: \"git\" } as Fig.Spec;\n"
	out, err := Transpile(source, "git.mts")
	require.NoError(t, err)
	assert.NotContains(t, out, "interface")
	assert.NotContains(t, out, "Fig.")
	assert.Contains(t, out, "export const gitSpec = ")
	assert.Contains(t, out, "\"git\"")
}

func TestTranspileKeepsPlainModules(t *testing.T) {
	source := "export const a = 1;\n"
	out, err := Transpile(source, "a.mts")
	require.NoError(t, err)
	assert.Equal(t, source, out)
}

func TestTranspileBlankInput(t *testing.T) {
	for _, source := range []string{"", "\n", "  \n\t"} {
		out, err := Transpile(source, "empty.mts")
		require.NoError(t, err)
		assert.Equal(t, source, out)
	}
}

func TestTranspileErrorKeepsSource(t *testing.T) {
	source := "export const = {;\n"
	out, err := Transpile(source, "broken.mts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.mts")
	assert.Equal(t, source, out)
}

func TestVirtualTypeScriptName(t *testing.T) {
	assert.Equal(t, "aws.mts", virtualTypeScriptName("aws.mjs"))
	assert.Equal(t, "index.mts", virtualTypeScriptName("index"))
}

func TestTranspileKeepsUnusedValueImports(t *testing.T) {
	source := "import { helpers } from \"./helpers.mjs\";\nimport type { Opt } from \"./types\";\nexport const a = 1;\n"
	out, err := Transpile(source, "a.mts")
	require.NoError(t, err)
	assert.Contains(t, out, "import { helpers } from \"./helpers.mjs\";")
	assert.NotContains(t, out, "./types")
}

func TestTranspileKeepsModuleSyntax(t *testing.T) {
	source := "interface X { a?: string }\nexport const fooSpec = { name: \"foo\" };\nexport default completionSpec;\n"
	out, err := Transpile(source, "foo.mts")
	require.NoError(t, err)
	assert.Contains(t, out, "export const fooSpec = { name: \"foo\" };")
	assert.Contains(t, out, "export default completionSpec;")
	assert.NotContains(t, out, "export {")
	assert.NotContains(t, out, "foo_default")
	assert.Equal(t, "fooSpec", ExportedSpecName(out))
}

func TestTranspileKeepsOnlyLegalComments(t *testing.T) {
	source := "/*! keep me */\n// drop me\nexport const a = 1;\n"
	out, err := Transpile(source, "a.mts")
	require.NoError(t, err)
	assert.Contains(t, out, "/*! keep me */")
	assert.NotContains(t, out, "drop me")
}
