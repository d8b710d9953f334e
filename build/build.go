// Package build describes the running patience binary. Release builds inject
// a JSON document with
//
//	-ldflags "-X github.com/amp-labs/patience/build.infoJSON=<json>"
//
// and other builds fall back to the module information embedded by the Go
// toolchain.
package build

import (
	"encoding/json"
	"log/slog"
	"runtime/debug"
	"strings"
)

// infoJSON is set at link time.
var infoJSON string //nolint:gochecknoglobals

const develVersion = "(devel)"

// Info contains build metadata.
type Info struct {
	Version      string            `json:"version"`
	GitCommit    string            `json:"git_commit"` //nolint:tagliatelle
	BuildTime    string            `json:"build_time"` //nolint:tagliatelle
	GoVersion    string            `json:"go_version"` //nolint:tagliatelle
	Dependencies map[string]string `json:"dependencies"`
}

// Parse deserializes a JSON string into build Info.
// Returns (nil, false) if the input is empty, "{}", or fails to parse.
func Parse(js string) (*Info, bool) {
	if len(js) == 0 || js == "{}" {
		return nil, false
	}

	var info Info

	err := json.Unmarshal([]byte(js), &info)
	if err != nil {
		slog.Warn("Failed to parse build info from JSON",
			"data", js,
			"error", err)

		return nil, false
	}

	return &info, true
}

// Current returns the link time info when present and the toolchain's
// embedded build info otherwise.
func Current() Info {
	if info, ok := Parse(infoJSON); ok {
		if info.Version == "" {
			info.Version = develVersion
		}

		return *info
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{Version: develVersion}
	}

	return fromBuildInfo(bi)
}

func fromBuildInfo(bi *debug.BuildInfo) Info {
	info := Info{
		Version:      bi.Main.Version,
		GoVersion:    bi.GoVersion,
		Dependencies: make(map[string]string, len(bi.Deps)),
	}

	if info.Version == "" {
		info.Version = develVersion
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.GitCommit = s.Value
		case "vcs.time":
			info.BuildTime = s.Value
		}
	}

	for _, dep := range bi.Deps {
		info.Dependencies[dep.Path] = dep.Version
	}

	return info
}

// String formats the version line printed by --version.
func (i Info) String() string {
	parts := []string{i.Version}

	if i.GitCommit != "" {
		parts = append(parts, "commit "+shortCommit(i.GitCommit))
	}

	if i.BuildTime != "" {
		parts = append(parts, "built "+i.BuildTime)
	}

	if i.GoVersion != "" {
		parts = append(parts, i.GoVersion)
	}

	return strings.Join(parts, ", ")
}

func shortCommit(commit string) string {
	const short = 12

	if len(commit) > short {
		return commit[:short]
	}

	return commit
}
