// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/danielolaszy/jiramodel/pkg/jiratime"
	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application.
type Config struct {
	GitHub    GitHubConfig
	Jira      JiraConfig
	Timestamp TimestampConfig
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token  string
	Domain string
}

// JiraConfig holds JIRA specific configuration.
type JiraConfig struct {
	URL      string
	Username string
	Token    string
}

// TimestampConfig controls how JIRA timestamps are rendered.
type TimestampConfig struct {
	Layout             string
	SpacedNegativeSign bool
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("github.domain", "github.com")
	v.SetDefault("timestamp.layout", jiratime.DefaultLayout)
	v.SetDefault("timestamp.spaced_sign", true)

	// Map specific environment variables
	for key, env := range map[string]string{
		"github.token":          "GITHUB_TOKEN",
		"github.domain":         "GITHUB_DOMAIN",
		"jira.url":              "JIRA_URL",
		"jira.username":         "JIRA_USERNAME",
		"jira.token":            "JIRA_TOKEN",
		"timestamp.layout":      "JIRA_TIMESTAMP_LAYOUT",
		"timestamp.spaced_sign": "JIRA_TIMESTAMP_SPACED_SIGN",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	domain := v.GetString("github.domain")
	if domain == "" {
		domain = "github.com"
	}
	layout := v.GetString("timestamp.layout")
	if layout == "" {
		layout = jiratime.DefaultLayout
	}

	config := &Config{
		GitHub: GitHubConfig{
			Token:  v.GetString("github.token"),
			Domain: domain,
		},
		Jira: JiraConfig{
			URL:      v.GetString("jira.url"),
			Username: v.GetString("jira.username"),
			Token:    v.GetString("jira.token"),
		},
		Timestamp: TimestampConfig{
			Layout:             layout,
			SpacedNegativeSign: v.GetBool("timestamp.spaced_sign"),
		},
	}

	if err := config.Codec().Validate(); err != nil {
		return nil, fmt.Errorf("invalid JIRA_TIMESTAMP_LAYOUT: %w", err)
	}

	return config, nil
}

// Codec builds the timestamp codec configuration.
func (c *Config) Codec() jiratime.Config {
	return jiratime.Config{
		Layout:             c.Timestamp.Layout,
		SpacedNegativeSign: c.Timestamp.SpacedNegativeSign,
	}
}

// ValidateJiraConfig validates JIRA-specific configuration.
func ValidateJiraConfig(config *Config) error {
	var missingVars []string

	if config.Jira.URL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Username == "" {
		missingVars = append(missingVars, "JIRA_USERNAME")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

// ValidateGitHubConfig validates GitHub-specific configuration.
func ValidateGitHubConfig(config *Config) error {
	if config.GitHub.Token == "" {
		return fmt.Errorf("missing required environment variables: [GITHUB_TOKEN]")
	}
	return nil
}
