// Package compileinfo reports which revision a gwastrack binary was built
// from, for the -version flag of each command.
package compileinfo

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
)

// Version is overridden at link time:
//
//	go build -ldflags "-X github.com/carbocation/gwastrack/compileinfo.Version=v0.3.0"
var Version = "devel"

type CompileInfo struct {
	Program    string
	Version    string
	Module     string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	parts := []string{c.Module}
	if c.GoVersion != "" {
		parts = append(parts, c.GoVersion)
	}
	if c.Commit != "" {
		commit := "commit " + c.ShortCommit()
		if c.CommitTime != "" {
			commit += " at " + c.CommitTime
		}
		if c.Modified {
			commit += ", modified"
		}
		parts = append(parts, commit)
	}

	return fmt.Sprintf("%s %s (%s)", c.Program, c.Version, strings.Join(parts, ", "))
}

// ShortCommit returns the first 12 characters of the VCS revision.
func (c CompileInfo) ShortCommit() string {
	if len(c.Commit) > 12 {
		return c.Commit[:12]
	}
	return c.Commit
}

// Get reads the build information embedded in the running binary.
func Get(program string) CompileInfo {
	out := CompileInfo{Program: program, Version: Version}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	return fromBuildInfo(out, z)
}

func fromBuildInfo(out CompileInfo, z *debug.BuildInfo) CompileInfo {
	out.GoVersion = z.GoVersion
	out.Module = z.Main.Path
	if out.Module == "" {
		out.Module = z.Path
	}
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Fprint writes the build information of program to w.
func Fprint(w io.Writer, program string) {
	fmt.Fprintln(w, Get(program))
}
