package checks

import (
	"context"
	"fmt"
	"strings"

	"scene-toolkit/core/fetch"
	"scene-toolkit/core/storage"
	"scene-toolkit/feature/assets"

	"github.com/spf13/afero"
)

// Locations tells the manifest check where asset URLs resolve.
// A nil Client or Files skips the URLs that would need it.
type Locations struct {
	Client  storage.Client
	Bucket  string
	Files   afero.Fs
	BaseDir string
}

// MissingAsset is a manifest item whose source could not be found.
type MissingAsset struct {
	Kind assets.Kind `json:"kind"`
	ID   string      `json:"id"`
	URL  string      `json:"url"`
}

// ManifestReport is the result of a manifest check.
type ManifestReport struct {
	Manifest string         `json:"manifest"`
	Checked  int            `json:"checked"`
	Missing  []MissingAsset `json:"missing"`
	Skipped  []string       `json:"skipped"`
	Errors   []string       `json:"errors"`
}

// OK reports whether every checked item was found.
func (r *ManifestReport) OK() bool {
	return len(r.Missing) == 0 && len(r.Errors) == 0
}

// CheckManifest verifies that every storage and file URL in m exists.
// HTTP URLs are listed as skipped.
func CheckManifest(ctx context.Context, loc Locations, m *assets.Manifest) (*ManifestReport, error) {
	if m == nil {
		return nil, fmt.Errorf("manifest is nil")
	}

	report := &ManifestReport{
		Manifest: m.Name,
		Missing:  []MissingAsset{},
		Skipped:  []string{},
		Errors:   []string{},
	}

	m.Assets.Each(func(kind assets.Kind, item assets.Item) {
		if ctx.Err() != nil {
			return
		}

		found, handled, err := loc.exists(ctx, item.URL)
		if !handled {
			report.Skipped = append(report.Skipped, item.URL)
			return
		}
		report.Checked++
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s %s: %v", kind, item.ID, err))
			return
		}
		if !found {
			report.Missing = append(report.Missing, MissingAsset{Kind: kind, ID: item.ID, URL: item.URL})
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

func (l Locations) exists(ctx context.Context, url string) (found, handled bool, err error) {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		scheme = "file"
	}

	switch strings.ToLower(scheme) {
	case "s3":
		if l.Client == nil {
			return false, false, nil
		}
		found, err = storage.ObjectExists(ctx, l.Client, l.Bucket, fetch.ObjectKey(url))
		return found, true, err
	case "file":
		if l.Files == nil {
			return false, false, nil
		}
		found, err = afero.Exists(l.Files, fetch.FilePath(l.BaseDir, url))
		return found, true, err
	default:
		return false, false, nil
	}
}
