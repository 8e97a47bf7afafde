package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/buildinfo"
	"github.com/aidanlsb/fieldmenu/internal/ui"
)

const defaultModulePath = "github.com/aidanlsb/fieldmenu"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fmenu version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(cmd, info, nil)
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Bold.Render("fmenu "+info.Version))

		t := ui.NewTable(2)
		t.AddRow(ui.Key("module"), info.ModulePath)
		if info.Commit != "" {
			t.AddRow(ui.Key("commit"), info.Commit)
		}
		if info.CommitTime != "" {
			t.AddRow(ui.Key("built"), info.CommitTime)
		}
		t.AddRow(ui.Key("go"), info.GoVersion)
		t.AddRow(ui.Key("platform"), info.Platform)
		if info.Modified {
			t.AddRow(ui.Key("modified"), "true")
		}
		fmt.Fprint(out, t.String())
		return nil
	},
}

// currentVersionInfo prefers the module build info and fills gaps from
// release ldflags.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
	}
	goos, goarch := runtime.GOOS, runtime.GOARCH

	if bi, ok := readBuildInfo(); ok && bi != nil {
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}

		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		info.Version = normalizeVersion(bi.Main.Version)
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		if v := settings["GOOS"]; v != "" {
			goos = v
		}
		if v := settings["GOARCH"]; v != "" {
			goarch = v
		}
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified, _ = strconv.ParseBool(settings["vcs.modified"])
	}
	info.Platform = goos + "/" + goarch

	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.CommitTime == "" {
		info.CommitTime = buildinfo.Date
	}
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
