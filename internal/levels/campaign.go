package levels

import (
	"embed"
)

//go:embed campaign/*.yaml
var campaignFS embed.FS

// Campaign returns a loader over the built-in levels.
func Campaign() *Loader {
	return NewFSLoader(campaignFS, "campaign")
}

// Open returns a directory loader when dir is set, otherwise the built-in
// campaign.
func Open(dir string) *Loader {
	if dir == "" {
		return Campaign()
	}
	return NewLoader(dir)
}
