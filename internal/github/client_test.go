package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielolaszy/jiramodel/internal/config"
	"github.com/danielolaszy/jiramodel/pkg/jiratime"
	"github.com/danielolaszy/jiramodel/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIssueRef(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    IssueRef
		wantErr bool
	}{
		{name: "Valid reference", input: "org/repo#12", want: IssueRef{Owner: "org", Repo: "repo", Number: 12}},
		{name: "Dotted repository", input: " org/my.repo-x#3 ", want: IssueRef{Owner: "org", Repo: "my.repo-x", Number: 3}},
		{name: "Missing number", input: "org/repo", wantErr: true},
		{name: "Zero number", input: "org/repo#0", wantErr: true},
		{name: "Missing owner", input: "repo#1", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseIssueRef(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.String(), got.String())
		})
	}
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(context.Background(), &config.Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")

	cfg := &config.Config{GitHub: config.GitHubConfig{Token: "test-token", Domain: "github.example.com"}}
	client, err := NewClient(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://github.example.com/api/v3/", client.client.BaseURL.String())
}

func TestFormatComment(t *testing.T) {
	comment := models.Comment{
		BaseProperties: models.BaseProperties{ID: 10000},
		Author:         models.User{Name: "jdoe"},
		Body:           "Looks good",
		Created:        jiratime.Date(2023, 5, 1, 10, 15, 30, 123400000, -2*time.Hour),
	}

	body, err := FormatComment(jiratime.Default(), "PROJ-1", comment)
	require.NoError(t, err)
	assert.Equal(t, "**jdoe** commented on PROJ-1 at `2023-05-01T10:15:30.1234 - 0200`:\n\nLooks good\n\n----\nMirrored from JIRA comment 10000", body)

	comment.Author.DisplayName = "Jane Doe"
	body, err = FormatComment(jiratime.New(jiratime.Config{}), "PROJ-1", comment)
	require.NoError(t, err)
	assert.Contains(t, body, "**Jane Doe**")
	assert.Contains(t, body, "`2023-05-01T10:15:30.1234-0200`")
}

func TestMirrorComments(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/org/repo/issues/12/comments", r.URL.Path)

		var payload struct {
			Body string `json:"body"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		mu.Lock()
		bodies = append(bodies, payload.Body)
		mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": 1}`)
	}))
	defer server.Close()

	client, err := newClient(server.Client(), server.URL, nil)
	require.NoError(t, err)

	comments := []models.Comment{
		{BaseProperties: models.BaseProperties{ID: 1}, Author: models.User{Name: "a"}, Body: "first", Created: jiratime.Date(2023, 5, 1, 10, 0, 0, 0, time.Hour)},
		{BaseProperties: models.BaseProperties{ID: 2}, Body: "secret", Visibility: &models.Visibility{Type: "role", Value: "Administrators"}},
		{BaseProperties: models.BaseProperties{ID: 3}, Author: models.User{Name: "b"}, Body: "third", Created: jiratime.Date(2023, 5, 2, 10, 0, 0, 0, 0)},
	}

	posted, err := client.MirrorComments(context.Background(), IssueRef{Owner: "org", Repo: "repo", Number: 12}, "PROJ-1", comments)
	require.NoError(t, err)
	assert.Equal(t, 2, posted)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 2)
	assert.Contains(t, bodies[0], "2023-05-01T10:00:00.0000+0100")
	assert.Contains(t, bodies[1], "third")
}

func TestMirrorCommentsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message": "Not Found"}`)
	}))
	defer server.Close()

	client, err := newClient(server.Client(), server.URL, nil)
	require.NoError(t, err)

	posted, err := client.MirrorComments(context.Background(), IssueRef{Owner: "org", Repo: "repo", Number: 1}, "PROJ-1",
		[]models.Comment{{BaseProperties: models.BaseProperties{ID: 9}, Body: "x"}})
	require.Error(t, err)
	assert.Equal(t, 0, posted)
	assert.Contains(t, err.Error(), "status: 404")
}
