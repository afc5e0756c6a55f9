//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// CreateTestWorkspace creates a temporary workspace that doubles as $HOME
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir, err := os.MkdirTemp("", "dropsel-test-*")
	if err != nil {
		return "", err
	}

	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteConfig writes a config with the given body below a [ui] table that
// points the log and the file picker into the workspace. Returns the path.
func (tf *TUITestFramework) WriteConfig(body string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	filesDir := filepath.Join(tf.workspace, "files")
	if err := os.MkdirAll(filesDir, 0755); err != nil {
		return "", err
	}

	header := fmt.Sprintf("version = 1\n\n[ui]\nlog_file = %q\nstart_dir = %q\n\n",
		filepath.Join(tf.workspace, "dropsel.log"), filesDir)

	path := filepath.Join(tf.workspace, "config.toml")
	if err := os.WriteFile(path, []byte(header+body), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// CreateUploadFile creates a file the upload picker can choose
func (tf *TUITestFramework) CreateUploadFile(name, content string) (string, error) {
	path := filepath.Join(tf.workspace, "files", name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(content), 0644)
}

// fruitsConfig is a single dropdown with three options and no upload
const fruitsConfig = `[[dropdown]]
id = "fruits"
title = "Favourite fruits"
allow_file_upload = false

  [[dropdown.option]]
  value = "apple"
  label = "Apple"

  [[dropdown.option]]
  value = "banana"
  label = "Banana"

  [[dropdown.option]]
  value = "cherry"
  label = "Cherry"
`

// printedResult mirrors one [[dropdown]] table written by --print
type printedResult struct {
	ID       string   `toml:"id"`
	Title    string   `toml:"title"`
	Selected []string `toml:"selected"`
	Upload   string   `toml:"upload"`
}

// PrintedResults parses the TOML the app prints after leaving the alt screen
func (tf *TUITestFramework) PrintedResults() ([]printedResult, error) {
	out := tf.SnapshotPlain()
	idx := strings.Index(out, "[[dropdown]]")
	if idx < 0 {
		return nil, fmt.Errorf("no results printed")
	}

	var doc struct {
		Dropdown []printedResult `toml:"dropdown"`
	}
	if err := toml.Unmarshal([]byte(out[idx:]), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse printed results: %w", err)
	}
	return doc.Dropdown, nil
}
