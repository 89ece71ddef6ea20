// Package payload loads the bytes to be hidden: a single file read as
// is, or a directory deterministically archived into a tar stream. It
// treats both sources as an opaque byte sequence producer, kept free of
// the core embed/extract pipeline's own logic.
package payload

import (
	"archive/tar"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"stegosuite/internal/stegoerr"
)

// tarEpoch is the fixed modification time stamped on every archived
// entry so that archiving the same directory twice produces
// byte-identical output regardless of filesystem timestamps.
var tarEpoch = time.Unix(0, 0).UTC()

// Kind identifies whether a loaded payload came from a single file or a
// directory archive, mirroring the metadata record's source_kind field.
type Kind string

const (
	KindFile Kind = "file"
	KindDir  Kind = "dir"
)

// Loaded is the result of reading a payload path: its raw bytes, the
// kind of source it came from, and the basename to report back to the
// extractor.
type Loaded struct {
	Bytes []byte
	Kind  Kind
	Name  string
}

// Load reads path into memory. A directory is archived with Archive; a
// regular file is read verbatim.
func Load(path string) (Loaded, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Loaded{}, stegoerr.IO("stat payload %s: %w", path, err)
	}

	if info.IsDir() {
		archived, err := Archive(path)
		if err != nil {
			return Loaded{}, err
		}
		return Loaded{Bytes: archived, Kind: KindDir, Name: filepath.Base(filepath.Clean(path))}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, stegoerr.IO("read payload %s: %w", path, err)
	}
	if len(data) == 0 {
		return Loaded{}, stegoerr.Arg("payload %s is empty", path)
	}
	return Loaded{Bytes: data, Kind: KindFile, Name: filepath.Base(path)}, nil
}

// Archive walks dir and produces a deterministic tar stream: entries are
// visited in lexical path order, so the same directory tree always
// produces byte-identical archive bytes (and therefore the same
// compressed size, SHA-256, and so on).
func Archive(dir string) ([]byte, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stegoerr.IO("walk payload directory %s: %w", dir, err)
	}
	sort.Strings(paths)

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, path := range paths {
		if err := addTarEntry(tw, dir, path); err != nil {
			return nil, stegoerr.IO("archive %s: %w", path, err)
		}
	}
	if err := tw.Close(); err != nil {
		return nil, stegoerr.IO("close tar archive: %w", err)
	}
	return buf.Bytes(), nil
}

func addTarEntry(tw *tar.Writer, root, path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}
	rel = filepath.ToSlash(rel)

	link := ""
	if info.Mode()&os.ModeSymlink != 0 {
		link, err = os.Readlink(path)
		if err != nil {
			return err
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	header.Name = rel
	// Archive contents must be reproducible across runs: strip the
	// filesystem's mtime rather than let it leak into the payload
	// bytes (and hence the SHA-256 and compressed size).
	header.ModTime = tarEpoch
	header.AccessTime = tarEpoch
	header.ChangeTime = tarEpoch

	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	if info.Mode().IsRegular() {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(tw, f); err != nil {
			return err
		}
	}
	return nil
}

// Unarchive extracts a tar stream produced by Archive into outDir.
func Unarchive(data []byte, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return stegoerr.IO("create output directory %s: %w", outDir, err)
	}

	tr := tar.NewReader(bytes.NewReader(data))
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return stegoerr.Runtime("read tar entry: %w", err)
		}

		target := filepath.Join(outDir, filepath.FromSlash(header.Name))
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return stegoerr.IO("create directory %s: %w", target, err)
			}
		case tar.TypeSymlink:
			if err := os.Symlink(header.Linkname, target); err != nil {
				return stegoerr.IO("create symlink %s: %w", target, err)
			}
		default:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return stegoerr.IO("create directory %s: %w", filepath.Dir(target), err)
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(header.Mode))
			if err != nil {
				return stegoerr.IO("create file %s: %w", target, err)
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return stegoerr.IO("write file %s: %w", target, err)
			}
			f.Close()
		}
	}
}
