/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version reports the figmagen build.
package version

import (
	"runtime/debug"
	"strings"
)

// Name is the program name used in output, the MCP handshake and HTTP requests.
const Name = "figmagen"

// Set at build time via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = ""
)

var readBuildInfo = debug.ReadBuildInfo

// Get returns the version string. An ldflags version wins, then the module
// version recorded by go install, then the git tag plus short commit.
func Get() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}

	v := GitTag
	if commit := shortCommit(); commit != "" && !strings.HasSuffix(GitTag, commit) {
		v += "-" + commit
	}
	if GitDirty == "dirty" {
		v += "-dirty"
	}
	return v
}

func shortCommit() string {
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}

// UserAgent identifies figmagen when fetching remote exports.
func UserAgent() string {
	return Name + "/" + Get()
}

// BuildInfo is the build description printed by `figmagen version --format json`.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
	GitDirty  string `json:"gitDirty"`
}

// Info returns the build description.
func Info() BuildInfo {
	return BuildInfo{
		Version:   Get(),
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildTime: BuildTime,
		GitDirty:  GitDirty,
	}
}
