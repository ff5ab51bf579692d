package cienv

import (
	"testing"

	cienvironment "github.com/cucumber/ci-environment/go"
	"github.com/stretchr/testify/assert"
)

func TestGetCIName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"GitHub Actions", "github-actions"},
		{"Azure Pipelines", "azure-pipelines"},
		{"Jenkins", "jenkins"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetCIName(&cienvironment.CiEnvironment{Name: tt.name}))
		})
	}
}

func TestIsGitHubActions(t *testing.T) {
	t.Run("explicit flag", func(t *testing.T) {
		t.Setenv(GitHubActionsEnv, "true")
		assert.True(t, IsGitHubActions())
		assert.Equal(t, GitHubActions, Name())
	})

	t.Run("detected from run variables", func(t *testing.T) {
		t.Setenv(GitHubActionsEnv, "")
		t.Setenv("GITHUB_SERVER_URL", "https://github.com")
		t.Setenv("GITHUB_REPOSITORY", "acme/cliflow")
		t.Setenv("GITHUB_RUN_ID", "42")
		assert.True(t, IsGitHubActions())
		assert.True(t, IsCI())
	})
}
