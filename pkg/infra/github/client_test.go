package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/m-mizutani/gt"

	githubinfra "github.com/m-mizutani/courier/pkg/infra/github"
)

const commitResponse = `{
	"sha": "65f52c2900191143efeacfb3ed2ff54e212322ce",
	"commit": {
		"message": "[86c6t8m47] Dodao test 2",
		"author": {"name": "Test User", "email": "test@example.com", "date": "2025-01-15T10:30:00Z"}
	},
	"stats": {"additions": 12, "deletions": 3, "total": 15},
	"files": [
		{"filename": "main.go", "status": "modified", "additions": 10, "deletions": 3, "patch": "@@ -1 +1 @@\n-a\n+b"},
		{"filename": "logo.png", "status": "added", "additions": 2, "deletions": 0}
	]
}`

func TestClient_GetCommit(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(commitResponse))
	}))
	defer server.Close()

	client, err := githubinfra.NewClient("test-token", githubinfra.WithBaseURL(server.URL))
	gt.NoError(t, err)

	details, err := client.GetCommit(context.Background(), "c4ps63/TestRepo", "65f52c2900191143efeacfb3ed2ff54e212322ce")
	gt.NoError(t, err)

	gt.Equal(t, gotPath, "/repos/c4ps63/TestRepo/commits/65f52c2900191143efeacfb3ed2ff54e212322ce")
	gt.Equal(t, gotAuth, "Bearer test-token")

	gt.Equal(t, details.SHA, "65f52c2")
	gt.Equal(t, details.Message, "[86c6t8m47] Dodao test 2")
	gt.Equal(t, details.Author, "Test User")
	gt.Equal(t, details.Date, "2025-01-15 10:30")
	gt.Equal(t, details.Stats.Additions, 12)
	gt.Equal(t, details.Stats.Deletions, 3)
	gt.Equal(t, details.Stats.Total, 15)

	gt.Equal(t, len(details.Files), 2)
	gt.Equal(t, details.Files[0].Filename, "main.go")
	gt.Equal(t, details.Files[0].Status, "modified")
	gt.True(t, details.Files[0].HasPatch())
	gt.Value(t, details.Files[1].HasPatch()).Equal(false)
}

func TestClient_GetCommit_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	client, err := githubinfra.NewClient("test-token", githubinfra.WithBaseURL(server.URL))
	gt.NoError(t, err)

	details, err := client.GetCommit(context.Background(), "c4ps63/TestRepo", "deadbeef")
	gt.Error(t, err)
	gt.Value(t, details == nil).Equal(true)
}

func TestClient_GetCommit_InvalidRepository(t *testing.T) {
	client, err := githubinfra.NewClient("test-token")
	gt.NoError(t, err)

	_, err = client.GetCommit(context.Background(), "no-slash", "deadbeef")
	gt.Error(t, err)
}

func TestClient_CurrentUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"login":"c4ps63"}`))
	}))
	defer server.Close()

	client, err := githubinfra.NewClient("test-token", githubinfra.WithBaseURL(server.URL))
	gt.NoError(t, err)

	login, err := client.CurrentUser(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, login, "c4ps63")
}

func TestClient_WithRealAPI(t *testing.T) {
	token := os.Getenv("TEST_GITHUB_TOKEN")
	repo := os.Getenv("TEST_GITHUB_REPO")
	sha := os.Getenv("TEST_GITHUB_SHA")
	if token == "" || repo == "" || sha == "" {
		t.Skip("TEST_GITHUB_TOKEN, TEST_GITHUB_REPO or TEST_GITHUB_SHA not set")
	}

	client, err := githubinfra.NewClient(token)
	gt.NoError(t, err)

	details, err := client.GetCommit(context.Background(), repo, sha)
	gt.NoError(t, err)
	gt.Equal(t, len(details.SHA), 7)
}
