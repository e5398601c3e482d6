package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/hashaudit/internal/filex"
)

const sessionDirName = "session"

// saveLastSubmitter remembers the submitter name so the next login can offer
// it as the default. Best effort: failures are silently ignored.
func saveLastSubmitter(name string) {
	dir, err := filex.EnsureSubdDir(sessionDirName)
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(dir, "last_submitter"), []byte(name), 0o600)
}

// loadLastSubmitter returns the previously saved submitter name, if any.
func loadLastSubmitter() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(cwd, sessionDirName, "last_submitter"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
