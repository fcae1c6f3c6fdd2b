package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	ferrors "github.com/matzehuels/factoriogen/pkg/errors"
)

// DecodePackage reads a package.json document from r.
func DecodePackage(r io.Reader) (*Package, error) {
	var pkg Package
	if err := json.NewDecoder(r).Decode(&pkg); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidManifest, err, "decode package.json")
	}
	return &pkg, nil
}

// ReadPackage opens path and decodes it with [DecodePackage].
func ReadPackage(path string) (*Package, error) {
	if err := ferrors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "input file %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	pkg, err := DecodePackage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pkg, nil
}

// EncodeInfo writes info as indented JSON to w. HTML characters are not
// escaped so constraints like ">=" stay readable.
func EncodeInfo(w io.Writer, info Info) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(info); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteInfo writes info to the file at path, replacing it if it exists.
func WriteInfo(path string, info Info) error {
	if err := ferrors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeInfo(f, info); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
