package utils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// LoadFile loads the given file and performs decompression if necessary.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "load")
	}

	data, err = Decompress(filename, data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", filepath.Base(filename))
	}
	return data, nil
}

// Decompress decompresses data according to the extension of
// filename. Archives (.zip, .7z) yield their first file. Unknown
// extensions are returned as is.
func Decompress(filename string, data []byte) ([]byte, error) {
	var decoder io.Reader
	var err error

	// try to assert the compression type from the file extension
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(bytes.NewReader(data)); err == nil {
			defer gz.Close()
			decoder = gz
		}
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".br":
		decoder = brotli.NewReader(bytes.NewReader(data))
	case ".zip":
		var r *zip.Reader
		if r, err = zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			break
		}
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			var rc io.ReadCloser
			if rc, err = f.Open(); err == nil {
				defer rc.Close()
				decoder = rc
			}
			break
		}
		if decoder == nil && err == nil {
			err = errors.New("zip: archive is empty")
		}
	case ".7z":
		var r *sevenzip.Reader
		if r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			break
		}
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			var rc io.ReadCloser
			if rc, err = f.Open(); err == nil {
				defer rc.Close()
				decoder = rc
			}
			break
		}
		if decoder == nil && err == nil {
			err = errors.New("7z: archive is empty")
		}
	default:
		// return the data as is
		return data, nil
	}

	if err != nil {
		return nil, err
	}

	return io.ReadAll(decoder)
}
