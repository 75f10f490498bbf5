// Package gitinfo describes the git state of the analyzed project, so
// coverage reports can say which revision they were produced from.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Info identifies the checked-out revision of a repository.
type Info struct {
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit"`
}

// String renders the revision as "branch@abcdef0" (or just the short hash
// for a detached HEAD).
func (i Info) String() string {
	if i.Branch == "" {
		return i.Commit
	}
	return fmt.Sprintf("%s@%s", i.Branch, i.Commit)
}

// Describe returns the HEAD revision of the repository at path. Projects
// that are not git repositories return ok=false; that is not an error.
func Describe(path string) (Info, bool) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return Info{}, false
	}

	head, err := repo.Head()
	if err != nil {
		return Info{}, false
	}

	info := Info{Commit: head.Hash().String()[:7]}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info, true
}
