package commoncontext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		root := t.TempDir()
		ctx := Compute(root, "", "")
		assert.Equal(t, filepath.Join(root, "dist", "completions", "community"), ctx.CommunityDir)
		assert.Equal(t, filepath.Join(root, "dist", "runtime", "helpers.mjs"), ctx.HelpersPath)
		assert.False(t, ctx.HasCommunityDir())
		assert.False(t, ctx.HasHelpers())
	})

	t.Run("absolute overrides", func(t *testing.T) {
		root := t.TempDir()
		other := t.TempDir()
		ctx := Compute(root, other, filepath.Join(other, "h.mjs"))
		assert.Equal(t, other, ctx.CommunityDir)
		assert.Equal(t, filepath.Join(other, "h.mjs"), ctx.HelpersPath)
		assert.True(t, ctx.HasCommunityDir())
	})
}

func TestRel(t *testing.T) {
	root := t.TempDir()
	ctx := Compute(root, "specs", "")
	assert.Equal(t, "aws/s3.mjs", ctx.Rel(filepath.Join(root, "specs", "aws", "s3.mjs")))
}

func TestFindSpecs(t *testing.T) {
	root := t.TempDir()
	ctx := Compute(root, "specs", "")
	require.NoError(t, os.MkdirAll(filepath.Join(ctx.CommunityDir, "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ctx.CommunityDir, "a.mjs"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ctx.CommunityDir, "b", "c.mjs"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ctx.CommunityDir, "b", "d.txt"), nil, 0o644))

	files, err := ctx.FindSpecs()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(ctx.CommunityDir, "a.mjs"),
		filepath.Join(ctx.CommunityDir, "b", "c.mjs"),
	}, files)

	moved := ctx.WithCommunityDir(filepath.Join(root, "elsewhere"))
	_, err = moved.FindSpecs()
	assert.Error(t, err)
}
