// Package archive reads metadata embedded in a client jar.
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/MrSnakeDoc/mcversion/internal/errs"
	"github.com/MrSnakeDoc/mcversion/internal/utils"
)

// PackMetaSuffix identifies the pack metadata entry inside a client jar.
const PackMetaSuffix = "pack.mcmeta"

// maxPackMetaBytes bounds the decompressed size of the metadata entry.
const maxPackMetaBytes = 1 << 20

type packMeta struct {
	Pack *struct {
		PackFormat *int `json:"pack_format"`
	} `json:"pack"`
}

// ExtractPackFormat returns pack.pack_format from the first entry whose name
// ends in pack.mcmeta. A nil result means no entry, no "pack" object or no
// "pack_format" field. Bytes that are not a zip container, or a metadata
// entry that is not valid JSON, yield an errs.MalformedArchive error.
func ExtractPackFormat(data []byte) (*int, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errs.Wrap(errs.MalformedArchive, err)
	}

	entry := findEntry(zr.File, PackMetaSuffix)
	if entry == nil {
		return nil, nil
	}

	raw, err := readEntry(entry)
	if err != nil {
		return nil, errs.Wrap(errs.MalformedArchive, fmt.Errorf("read %s: %w", entry.Name, err))
	}

	var meta packMeta
	if err := json.Unmarshal(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")), &meta); err != nil {
		return nil, errs.Wrap(errs.MalformedArchive, fmt.Errorf("parse %s: %w", entry.Name, err))
	}

	if meta.Pack == nil || meta.Pack.PackFormat == nil {
		return nil, nil
	}
	v := *meta.Pack.PackFormat
	return &v, nil
}

func findEntry(files []*zip.File, suffix string) *zip.File {
	for _, f := range files {
		if strings.HasSuffix(f.Name, suffix) {
			return f
		}
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer utils.Close(rc)

	data, err := io.ReadAll(io.LimitReader(rc, maxPackMetaBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxPackMetaBytes {
		return nil, fmt.Errorf("entry larger than %s", utils.HumanSize(maxPackMetaBytes))
	}
	return data, nil
}
