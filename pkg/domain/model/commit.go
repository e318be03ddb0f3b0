package model

// CommitDetails is a commit enriched with diff metadata from the code host
type CommitDetails struct {
	SHA     string // shortened to 7 characters
	Message string
	Author  string
	Date    string // 2006-01-02 15:04
	Files   []FileChange
	Stats   Stats
	Branch  string // attached by the webhook use case after fetch
}

// FileChange is one file entry of a commit
type FileChange struct {
	Filename  string
	Status    string // added, modified, removed, renamed, ...
	Additions int
	Deletions int
	Patch     *string // nil for binary or oversized files
}

// HasPatch reports whether the host returned diff text for the file
func (f FileChange) HasPatch() bool {
	return f.Patch != nil && *f.Patch != ""
}

// Stats holds line counts of a commit. Total is trusted from upstream.
type Stats struct {
	Additions int
	Deletions int
	Total     int
}

// CommitDateFormat is the layout of CommitDetails.Date
const CommitDateFormat = "2006-01-02 15:04"
