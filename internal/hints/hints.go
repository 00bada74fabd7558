// Package hints turns common CLI failures into a short suggestion.
//
// Every hint renders as "\n  hint: <text>" so it can be appended directly
// to an error line. An empty string means there is nothing useful to say.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-manuscript/internal/fileutil"
)

// dockerMarker is created by Docker in every container.
const dockerMarker = "/.dockerenv"

// ciVariables are set by the CI systems we know about.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// Environment describes where the process runs.
type Environment struct {
	Getenv      func(string) string
	InContainer bool
}

// Detect inspects the real process environment.
func Detect(getenv func(string) string) Environment {
	return Environment{Getenv: getenv, InContainer: fileutil.FileExists(dockerMarker)}
}

func (e Environment) inCI() bool {
	for _, name := range ciVariables {
		if e.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the rod variables that usually fix a browser
// that will not start.
func ForBrowserConnect(env Environment) string {
	var tips []string
	if (env.InContainer || env.inCI()) && env.Getenv("ROD_NO_SANDBOX") != "1" {
		tips = append(tips, "set ROD_NO_SANDBOX=1 inside containers and CI")
	}
	if env.Getenv("ROD_BROWSER_BIN") == "" {
		tips = append(tips, "point ROD_BROWSER_BIN at an installed Chrome")
	}
	return render(tips...)
}

// ForTimeout applies to any PDF render that ran out of time.
func ForTimeout() string {
	return render("raise --timeout for long manuscripts")
}

// ForConfigNotFound names --config and, when one of tried lies in the user
// config directory, the file that could be created there.
func ForConfigNotFound(tried []string) string {
	tip := "pass --config path/to/file.yaml"
	for _, p := range tried {
		if strings.Contains(filepath.ToSlash(p), "/go-manuscript/") {
			tip += " or create " + p
			break
		}
	}
	return render(tip)
}

// ForOutputDirectory applies when the output directory cannot be created.
func ForOutputDirectory() string {
	return render("make sure the parent directory exists and is writable")
}

// ForUnknownFormat lists the accepted --formats values.
func ForUnknownFormat(formats []string) string {
	if len(formats) == 0 {
		return ""
	}
	return render("choose from " + strings.Join(formats, ", "))
}

// ForInvalidManuscript points at the validate command for path.
func ForInvalidManuscript(path string) string {
	return render("run 'manuscript validate " + path + "' for a full report")
}

func render(tips ...string) string {
	if len(tips) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(tips, "; ")
}
