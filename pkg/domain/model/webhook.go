package model

import (
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/m-mizutani/goerr/v2"
)

// IsPush reports whether a decoded webhook body carries a commit list. The
// list is nil when the key is absent or null, which marks a non-push event.
func IsPush(e *github.PushEvent) bool {
	return e != nil && e.Commits != nil
}

// NewPushEvent validates a decoded push webhook and converts it into a PushEvent
func NewPushEvent(deliveryID string, e *github.PushEvent) (*PushEvent, error) {
	if e.GetRef() == "" {
		return nil, goerr.New("missing ref in push payload")
	}
	if e.GetRepo().GetFullName() == "" {
		return nil, goerr.New("missing repository.full_name in push payload", goerr.V("ref", e.GetRef()))
	}

	event := &PushEvent{
		DeliveryID: deliveryID,
		Repository: e.GetRepo().GetFullName(),
		Branch:     BranchFromRef(e.GetRef()),
		Pusher:     e.GetPusher().GetName(),
		Commits:    make([]CommitRef, 0, len(e.Commits)),
	}
	for _, c := range e.Commits {
		event.Commits = append(event.Commits, CommitRef{
			ID:      c.GetID(),
			Message: c.GetMessage(),
		})
	}
	return event, nil
}

// PushEvent is a push notification ready for processing
type PushEvent struct {
	DeliveryID string // X-GitHub-Delivery header or generated UUID
	Repository string // owner/name
	Branch     string
	Pusher     string
	Commits    []CommitRef
}

// CommitRef identifies a commit as delivered by the webhook
type CommitRef struct {
	ID      string
	Message string
}

// ShortID returns the first 7 characters of the commit sha
func (c CommitRef) ShortID() string {
	return ShortSHA(c.ID)
}

var refPrefixes = []string{"refs/heads/", "refs/tags/"}

// BranchFromRef strips a known ref prefix, e.g. refs/heads/feature/x -> feature/x.
// Unknown refs fall back to their last path segment.
func BranchFromRef(ref string) string {
	for _, prefix := range refPrefixes {
		if strings.HasPrefix(ref, prefix) {
			return strings.TrimPrefix(ref, prefix)
		}
	}
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

// ShortSHA truncates sha to 7 characters
func ShortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// PushResult summarizes a processed push event
type PushResult struct {
	Processed int
	Outcomes  []CommitOutcome
}

// CommitOutcome records what happened to a single commit
type CommitOutcome struct {
	SHA           string
	TaskID        string
	TaskName      string
	Posted        bool
	SummaryFailed bool
	SkipReason    string
}

// Skip reasons recorded in CommitOutcome
const (
	SkipFetchFailed  = "commit details unavailable"
	SkipNoTaskID     = "task id not found"
	SkipTaskNotFound = "task not found"
	SkipPostFailed   = "comment not posted"
)
