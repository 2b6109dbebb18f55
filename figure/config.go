package figure

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/gwastrack"
	"github.com/carbocation/gwastrack/gwas"
	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// JSONConfig describes a figure: a genomic region and the tracks drawn over
// it, top to bottom.
type JSONConfig struct {
	ConfigPath string `json:"-"`

	Region  string   `json:"region"`
	Width   null.Int `json:"width"`
	Backend string   `json:"backend"`

	// SkipFailedTracks logs a failing track and leaves it out instead of
	// failing the figure.
	SkipFailedTracks bool `json:"skip_failed_tracks"`

	Tracks []gwas.Config `json:"tracks"`
}

func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	out := JSONConfig{ConfigPath: path}

	expanded, err := gwastrack.ExpandHome(path)
	if err != nil {
		return out, pfx.Err(err)
	}

	f, err := os.Open(expanded)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	parsed, err := ParseJSONConfig(f)
	if err != nil {
		return out, err
	}
	parsed.ConfigPath = path

	// Track files are relative to the config file.
	dir := filepath.Dir(expanded)
	for i, track := range parsed.Tracks {
		parsed.Tracks[i].File = resolvePath(dir, track.File)
	}

	return parsed, nil
}

// ParseJSONConfig decodes a figure configuration. Unknown keys, at any
// level, are an error.
func ParseJSONConfig(r io.Reader) (JSONConfig, error) {
	var out JSONConfig

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return out, pfx.Err(err)
	}

	return out, nil
}

func resolvePath(dir, path string) string {
	switch {
	case path == "",
		gwastrack.IsGoogleStoragePath(path),
		path == "~" || strings.HasPrefix(path, "~/"),
		filepath.IsAbs(path):
		return path
	}

	return filepath.Join(dir, path)
}
