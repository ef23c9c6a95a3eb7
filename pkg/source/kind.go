package source

import "strings"

// Kind is the closed set of source specifiers a manifest entry can carry
type Kind int

const (
	// KindLocal is a path on disk, relative to the manifest directory
	KindLocal Kind = iota
	// KindHTTP is a single file downloaded over HTTP(S)
	KindHTTP
	// KindGit is a repository cloned with the git binary
	KindGit
)

const gitSuffix = ".git"

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindHTTP:
		return "http"
	case KindGit:
		return "git"
	default:
		return "unknown"
	}
}

// Classify determines the kind of src from its literal form. The .git
// suffix wins over the URL scheme, so https://host/repo.git is a clone.
func Classify(src string) Kind {
	switch {
	case strings.HasSuffix(src, gitSuffix):
		return KindGit
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return KindHTTP
	default:
		return KindLocal
	}
}

// IsRemote reports whether src names something off this machine: a URL
// with a scheme, or a git scp-style address like git@host:user/repo.git
func IsRemote(src string) bool {
	if strings.Contains(src, "://") {
		return true
	}
	colon := strings.Index(src, ":")
	if colon <= 0 {
		return false
	}
	slash := strings.Index(src, "/")
	return slash < 0 || colon < slash
}

// CloneDestination returns where src is materialized for dest. For git
// sources a trailing .git on the destination is dropped; any other kind gets
// dest back unchanged. Install and uninstall both go through here.
func CloneDestination(src, dest string) string {
	if Classify(src) == KindGit && strings.HasSuffix(dest, gitSuffix) && len(dest) > len(gitSuffix) {
		return strings.TrimSuffix(dest, gitSuffix)
	}
	return dest
}
