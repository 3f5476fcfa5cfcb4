package model

import (
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pushbell/pkg/domain/types"
)

const shortIDLength = 7

// PushEvent holds the fields of a GitHub push payload used to build a notification
type PushEvent struct {
	Ref           string     // e.g. refs/heads/main
	Commits       []Commit   // Pushed commits in payload order
	Repository    Repository // Target repository
	Actor         Actor      // User who pushed
	Compare       string     // Comparison view URL
	HeadCommitURL string     // URL of head_commit, may be empty
}

// Commit is a single pushed commit
type Commit struct {
	ID      string
	Message string
	URL     string
}

// Repository is the push target repository
type Repository struct {
	URL           string
	FullName      string
	DefaultBranch string
}

// Actor is the user who performed the push
type Actor struct {
	Name       string
	ProfileURL string
}

// ShortID returns the abbreviated commit hash
func (c Commit) ShortID() string {
	if len(c.ID) <= shortIDLength {
		return c.ID
	}
	return c.ID[:shortIDLength]
}

// Title returns the first line of the commit message
func (c Commit) Title() string {
	title, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSuffix(title, "\r")
}

// TreeURL returns the tree view URL of the given branch path
func (r Repository) TreeURL(branchPath string) string {
	return strings.TrimSuffix(r.URL, "/") + "/tree/" + branchPath
}

// Branch returns the last slash-delimited segment of Ref
func (e *PushEvent) Branch() string {
	if i := strings.LastIndex(e.Ref, "/"); i >= 0 {
		return e.Ref[i+1:]
	}
	return e.Ref
}

// BranchPath returns Ref without its refs/heads/ or refs/tags/ prefix
func (e *PushEvent) BranchPath() string {
	for _, prefix := range []string{"refs/heads/", "refs/tags/"} {
		if strings.HasPrefix(e.Ref, prefix) {
			return strings.TrimPrefix(e.Ref, prefix)
		}
	}
	return e.Branch()
}

// IsDefaultBranch reports whether the push targets the repository default branch
func (e *PushEvent) IsDefaultBranch() bool {
	return e.Branch() == e.Repository.DefaultBranch
}

// LinkTarget returns the URL a trailing link should point to: the
// comparison view for multi-commit pushes, the head commit otherwise.
func (e *PushEvent) LinkTarget() string {
	if len(e.Commits) > 1 {
		return e.Compare
	}
	if e.HeadCommitURL != "" {
		return e.HeadCommitURL
	}
	if len(e.Commits) == 1 {
		return e.Commits[0].URL
	}
	return ""
}

// NewPushEvent extracts a PushEvent from a go-github push payload
func NewPushEvent(ev *github.PushEvent) (*PushEvent, error) {
	if ev == nil {
		return nil, goerr.New("push event is nil", goerr.T(types.ErrTagMalformedPayload))
	}

	// Use Get*() helper methods for nil-safe field access
	ref := ev.GetRef()
	if ref == "" {
		return nil, goerr.New("missing ref in push event", goerr.T(types.ErrTagMalformedPayload))
	}

	repo := ev.GetRepo()
	if repo.GetFullName() == "" {
		return nil, goerr.New("missing repository in push event",
			goerr.T(types.ErrTagMalformedPayload),
			goerr.V("ref", ref),
		)
	}

	repoURL := repo.GetURL()
	if repoURL == "" {
		repoURL = repo.GetHTMLURL()
	}
	if repoURL == "" || repo.GetDefaultBranch() == "" {
		return nil, goerr.New("missing repository url or default branch in push event",
			goerr.T(types.ErrTagMalformedPayload),
			goerr.V("repository", repo.GetFullName()),
		)
	}

	actor := Actor{
		Name:       ev.GetSender().GetLogin(),
		ProfileURL: ev.GetSender().GetHTMLURL(),
	}
	if actor.Name == "" {
		actor = Actor{Name: ev.GetPusher().GetName()}
	}
	if actor.Name == "" {
		return nil, goerr.New("missing sender and pusher in push event",
			goerr.T(types.ErrTagMalformedPayload),
			goerr.V("repository", repo.GetFullName()),
		)
	}

	// An empty list is a valid push (e.g. a tag move); an absent one is not
	if ev.Commits == nil {
		return nil, goerr.New("missing commits in push event",
			goerr.T(types.ErrTagMalformedPayload),
			goerr.V("repository", repo.GetFullName()),
		)
	}
	if len(ev.Commits) > 1 && ev.GetCompare() == "" {
		return nil, goerr.New("missing compare url in push event",
			goerr.T(types.ErrTagMalformedPayload),
			goerr.V("repository", repo.GetFullName()),
			goerr.V("commits", len(ev.Commits)),
		)
	}

	commits := make([]Commit, 0, len(ev.Commits))
	for i, c := range ev.Commits {
		if c.GetID() == "" || c.GetURL() == "" {
			return nil, goerr.New("missing commit id or url in push event",
				goerr.T(types.ErrTagMalformedPayload),
				goerr.V("repository", repo.GetFullName()),
				goerr.V("index", i),
			)
		}
		commits = append(commits, Commit{
			ID:      c.GetID(),
			Message: c.GetMessage(),
			URL:     c.GetURL(),
		})
	}

	return &PushEvent{
		Ref:     ref,
		Commits: commits,
		Repository: Repository{
			URL:           repoURL,
			FullName:      repo.GetFullName(),
			DefaultBranch: repo.GetDefaultBranch(),
		},
		Actor:         actor,
		Compare:       ev.GetCompare(),
		HeadCommitURL: ev.GetHeadCommit().GetURL(),
	}, nil
}
