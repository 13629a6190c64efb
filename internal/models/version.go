package models

import "encoding/json"

// ManifestEntry is one element of the upstream manifest "versions" array.
type ManifestEntry struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Manifest is the subset of version_manifest_v2.json the service reads.
type Manifest struct {
	Versions []ManifestEntry `json:"versions"`
}

// VersionDetail is the per-version document linked from the manifest.
type VersionDetail struct {
	JavaVersion *struct {
		// Kept raw: upstream has only ever sent integers, but any JSON
		// value must still decode.
		MajorVersion json.RawMessage `json:"majorVersion"`
	} `json:"javaVersion"`
	Downloads struct {
		Client *Download `json:"client"`
		Server *Download `json:"server"`
	} `json:"downloads"`
	ReleaseTime string `json:"releaseTime"`
}

type Download struct {
	URL  string `json:"url"`
	SHA1 string `json:"sha1"`
}

// ReferencePageInfo holds the two fields scraped from the wiki page.
// ResourcePackFormat is nil when the row is absent.
type ReferencePageInfo struct {
	Title              string
	ResourcePackFormat *string
}

// ResolvedVersionRecord is the flat response of GET /version/{id}.
type ResolvedVersionRecord struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	JavaVersion          string `json:"java_version"`
	DatapackVersion      *int   `json:"datapack_version"`
	ResourcePackVersion  string `json:"resource_pack_version"`
	UpdateTitle          string `json:"update_title"`
	ReleaseTime          string `json:"release_time"`
	ReleaseTimeFormatted string `json:"release_time_formatted"`
	ClientURL            string `json:"client_url"`
	ServerURL            string `json:"server_url"`
	WikiURL              string `json:"wikiurl"`
}

// Announcement is what the watcher reports for a version it has not seen
// before. Type and ArticleURL are empty when the detail lookup failed.
type Announcement struct {
	ID         string `json:"id"`
	Type       string `json:"type,omitempty"`
	ArticleURL string `json:"article_url,omitempty"`
}
