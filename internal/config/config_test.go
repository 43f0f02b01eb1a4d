package config

import (
	"testing"

	"github.com/danielolaszy/jiramodel/pkg/jiratime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGitHubConfig(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		token  string
	}{
		{
			name:   "Explicit github.com",
			domain: "github.com",
			token:  "test-token",
		},
		{
			name:   "Custom GitHub domain",
			domain: "github.example.com",
			token:  "test-token",
		},
		{
			name:   "Empty domain should default to github.com",
			domain: "",
			token:  "test-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_DOMAIN", tt.domain)
			t.Setenv("GITHUB_TOKEN", tt.token)

			config, err := LoadConfig()
			require.NoError(t, err)
			if tt.domain == "" {
				assert.Equal(t, "github.com", config.GitHub.Domain)
			} else {
				assert.Equal(t, tt.domain, config.GitHub.Domain)
			}
			assert.Equal(t, tt.token, config.GitHub.Token)
			assert.NoError(t, ValidateGitHubConfig(config))
		})
	}
}

func TestValidateGitHubConfig(t *testing.T) {
	err := ValidateGitHubConfig(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestLoadTimestampConfig(t *testing.T) {
	tests := []struct {
		name       string
		layout     string
		spacedSign string
		want       jiratime.Config
		wantErr    bool
	}{
		{
			name: "Defaults",
			want: jiratime.DefaultConfig(),
		},
		{
			name:       "Compact sign",
			spacedSign: "false",
			want:       jiratime.Config{Layout: jiratime.DefaultLayout},
		},
		{
			name:   "Millisecond layout",
			layout: "2006-01-02T15:04:05.000",
			want:   jiratime.Config{Layout: "2006-01-02T15:04:05.000", SpacedNegativeSign: true},
		},
		{
			name:    "Layout with zone is rejected",
			layout:  "2006-01-02T15:04:05Z07:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JIRA_TIMESTAMP_LAYOUT", tt.layout)
			t.Setenv("JIRA_TIMESTAMP_SPACED_SIGN", tt.spacedSign)

			config, err := LoadConfig()
			if tt.wantErr {
				assert.ErrorIs(t, err, jiratime.ErrLayoutZone)
				assert.Nil(t, config)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, config.Codec())
		})
	}
}

func TestValidateJiraConfig(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		username string
		token    string
		wantErr  bool
	}{
		{
			name:     "All fields present",
			url:      "https://jira.example.com",
			username: "test-user",
			token:    "test-token",
			wantErr:  false,
		},
		{
			name:     "Missing URL",
			url:      "",
			username: "test-user",
			token:    "test-token",
			wantErr:  true,
		},
		{
			name:     "Missing username",
			url:      "https://jira.example.com",
			username: "",
			token:    "test-token",
			wantErr:  true,
		},
		{
			name:     "Missing token",
			url:      "https://jira.example.com",
			username: "test-user",
			token:    "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{
				Jira: JiraConfig{
					URL:      tt.url,
					Username: tt.username,
					Token:    tt.token,
				},
			}

			err := ValidateJiraConfig(config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
