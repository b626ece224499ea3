package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one baked recipe in the output manifest.
type ManifestEntry struct {
	Name     string `json:"name"`
	Recipe   string `json:"recipe"`
	Topology string `json:"topology"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Layers   int    `json:"layers"`
	Image    string `json:"image"`
	Preview  string `json:"preview,omitempty"`
}

// WriteManifest writes the successful results as JSON to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:     r.Name,
			Recipe:   filepath.ToSlash(filepath.Base(r.Recipe)),
			Topology: r.Topology,
			Width:    r.Width,
			Height:   r.Height,
			Layers:   r.Layers,
			Image:    filepath.ToSlash(r.Output),
			Preview:  filepath.ToSlash(r.Preview),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
