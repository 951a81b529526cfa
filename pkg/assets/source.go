package assets

import (
	"github.com/BurntSushi/toml"

	"github.com/flagring/flagring/pkg/errors"
	"github.com/flagring/flagring/pkg/flag"
)

// Source is the hand-edited TOML listing of flag definitions. Entries are
// not validated at load time; BuildManifest is where malformed flags get
// filtered out.
//
// Example file:
//
//	version = "2026-08"
//
//	[[flags]]
//	id = "pride"
//	display_name = "Pride"
//	category = "pride"
//	orientation = "horizontal"
//	stripes = [
//	    { color = "#E40303", weight = 1 },
//	    { color = "#FF8C00", weight = 1 },
//	]
type Source struct {
	Version string      `toml:"version"`
	Flags   []flag.Flag `toml:"flags"`
}

// LoadSource reads and decodes a TOML source file.
func LoadSource(path string) (*Source, error) {
	var src Source
	if _, err := toml.DecodeFile(path, &src); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode source %s", path)
	}
	return &src, nil
}

// ParseSource decodes a TOML source from raw bytes.
func ParseSource(data []byte) (*Source, error) {
	var src Source
	if err := toml.Unmarshal(data, &src); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode source")
	}
	return &src, nil
}
