package cli

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/aidanlsb/fieldmenu/internal/buildinfo"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	prev := readBuildInfo
	t.Cleanup(func() { readBuildInfo = prev })
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return bi, bi != nil
	}
}

func TestCurrentVersionInfoFromBuildInfo(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.23.4",
		Main: debug.Module{
			Path:    "github.com/aidanlsb/fieldmenu",
			Version: "v0.4.0",
		},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-03-01T09:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "GOOS", Value: "windows"},
			{Key: "GOARCH", Value: "amd64"},
		},
	})

	info := currentVersionInfo()

	if info.Version != "v0.4.0" {
		t.Errorf("Version = %q, want v0.4.0", info.Version)
	}
	if info.Commit != "abc123" || info.CommitTime != "2026-03-01T09:00:00Z" {
		t.Errorf("commit = %q at %q", info.Commit, info.CommitTime)
	}
	if !info.Modified {
		t.Error("Modified = false, want true")
	}
	if info.GoVersion != "go1.23.4" {
		t.Errorf("GoVersion = %q, want go1.23.4", info.GoVersion)
	}
	if info.Platform != "windows/amd64" {
		t.Errorf("Platform = %q, want windows/amd64", info.Platform)
	}
}

func TestCurrentVersionInfoFallsBackToLdflags(t *testing.T) {
	stubBuildInfo(t, nil)

	prevVersion, prevCommit := buildinfo.Version, buildinfo.Commit
	t.Cleanup(func() {
		buildinfo.Version, buildinfo.Commit = prevVersion, prevCommit
	})
	buildinfo.Version = "v0.5.0"
	buildinfo.Commit = "feedbeef"

	info := currentVersionInfo()

	if info.Version != "v0.5.0" || info.Commit != "feedbeef" {
		t.Errorf("got %s (%s), want v0.5.0 (feedbeef)", info.Version, info.Commit)
	}
	if info.ModulePath != defaultModulePath {
		t.Errorf("ModulePath = %q, want %q", info.ModulePath, defaultModulePath)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
}

func TestVersionCommand(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.23.4",
		Main:      debug.Module{Path: "github.com/aidanlsb/fieldmenu", Version: "(devel)"},
		Settings:  []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}},
	})
	conf := writeConfig(t, "")

	r := runCLI(t, nil, conf, "version", "--json")
	r.mustSucceed(t)
	var data versionInfo
	decodeData(t, r.json(t), &data)
	if data.Version != "devel" || data.Commit != "deadbeef" {
		t.Errorf("got %+v", data)
	}

	r = runCLI(t, nil, conf, "version")
	r.mustSucceed(t)
	if !strings.HasPrefix(r.stdout, "fmenu devel\n") || !strings.Contains(r.stdout, "deadbeef") {
		t.Errorf("stdout = %q", r.stdout)
	}
}
