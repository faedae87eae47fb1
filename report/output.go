package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// artifactTimestampLayout orders default artifact names chronologically;
// microseconds are appended separately.
const artifactTimestampLayout = "01022006_150405"

// ArtifactWriter produces run artifacts under a single output directory.
type ArtifactWriter struct {
	// Dir is the output directory, created on first write.
	Dir string
}

// Suffix returns the artifact name suffix for a run: the custom name when
// given, else a microsecond timestamp.
func (w *ArtifactWriter) Suffix(customName string) string {
	if customName != "" {
		return customName
	}
	now := time.Now()
	return fmt.Sprintf("%s_%06d", now.Format(artifactTimestampLayout), now.Nanosecond()/1000)
}

// UniqueSuffix returns a collision-free artifact suffix.
func (w *ArtifactWriter) UniqueSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// mergeTimestampLayout names merged files; day-first, unlike run suffixes.
const mergeTimestampLayout = "02012006_150405"

// mergedPrefix marks already-merged files so repeated merges skip them.
const mergedPrefix = "merged_outputs_"

// MergeOutputs folds every JSON artifact in the output directory into one
// merged file and returns its path. Artifacts are folded in write order,
// so on key collisions the most recently written one wins. Previously
// merged files are skipped.
func (w *ArtifactWriter) MergeOutputs() (string, error) {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return "", fmt.Errorf("read output directory: %w", err)
	}

	type artifact struct {
		name    string
		written time.Time
	}
	var artifacts []artifact
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, mergedPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", fmt.Errorf("stat artifact %s: %w", name, err)
		}
		artifacts = append(artifacts, artifact{name: name, written: info.ModTime()})
	}
	sort.Slice(artifacts, func(i, j int) bool {
		if artifacts[i].written.Equal(artifacts[j].written) {
			return artifacts[i].name < artifacts[j].name
		}
		return artifacts[i].written.Before(artifacts[j].written)
	})

	merged := make(map[string]json.RawMessage)
	for _, a := range artifacts {
		data, err := os.ReadFile(filepath.Join(w.Dir, a.name))
		if err != nil {
			return "", fmt.Errorf("read artifact %s: %w", a.name, err)
		}
		var payload map[string]json.RawMessage
		if err := json.Unmarshal(data, &payload); err != nil {
			return "", fmt.Errorf("parse artifact %s: %w", a.name, err)
		}
		for key, value := range payload {
			merged[key] = value
		}
	}

	now := time.Now()
	name := fmt.Sprintf("%s%s_%06d_%s.json",
		mergedPrefix, now.Format(mergeTimestampLayout), now.Nanosecond()/1000, w.UniqueSuffix())

	path := filepath.Join(w.Dir, name)
	if err := writeJSONAtomic(path, merged); err != nil {
		return "", err
	}
	return path, nil
}

// WriteJSON writes the payload as an indented JSON artifact atomically
// and returns its path.
func (w *ArtifactWriter) WriteJSON(suffix string, payload any) (string, error) {
	path := w.JSONPath(suffix)
	if err := writeJSONAtomic(path, payload); err != nil {
		return "", err
	}
	return path, nil
}

// WorkbookPath returns the path of the workbook artifact for a suffix.
func (w *ArtifactWriter) WorkbookPath(suffix string) string {
	return filepath.Join(w.Dir, "output_"+suffix+".xlsx")
}

// JSONPath returns the path of the JSON artifact for a suffix.
func (w *ArtifactWriter) JSONPath(suffix string) string {
	return filepath.Join(w.Dir, "output_"+suffix+".json")
}

// writeJSONAtomic marshals the payload in the artifact form (4-space
// indent) and writes it via temp file + rename, so a crashed run never
// leaves a partial artifact for a later merge to trip over.
func writeJSONAtomic(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".watchlog-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write result: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
