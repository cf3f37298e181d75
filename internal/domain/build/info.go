// Package build describes the running binary.
package build

import "fmt"

const repoURL = "https://github.com/bnema/ember"

// Info is filled from -ldflags at link time.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// Short renders "version (commit)", dropping the commit when unknown.
func (i Info) Short() string {
	if i.Commit == "" || i.Commit == "unknown" {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit)
}

// RepoURL returns the project's source repository.
func RepoURL() string {
	return repoURL
}
