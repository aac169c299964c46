package zip

import (
	"archive/zip"
	"bytes"
	"path"
)

// Asset is one archive entry.
type Asset struct {
	Filename string
	Group    string
	Data     []byte
}

// ArchiveAssets packs assets into an in-memory zip. A non-empty Group places
// the entry under a folder of that name.
func ArchiveAssets(assets []Asset) []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, asset := range assets {
		name := asset.Filename
		if asset.Group != "" {
			name = path.Join(asset.Group, name)
		}
		w, err := zw.Create(name)
		if err != nil {
			continue
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil
		}
	}
	_ = zw.Close()
	return buf.Bytes()
}
