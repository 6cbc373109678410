package media

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/Digital-Shane/treeview"
)

// File is a regular file found under a torrent root. Symlinks that resolve to
// a regular file are reported with the target's size.
type File struct {
	Path    string
	Name    string
	Ext     string
	Size    int64
	IsMedia bool
}

// MaxWalkDepth bounds how deep a torrent directory is indexed.
const MaxWalkDepth = 64

// MaxWalkEntries bounds how many entries a torrent directory may hold.
const MaxWalkEntries = 2000000

type treeBuilderFunc func(context.Context, string, bool, ...treeview.Option[treeview.FileInfo]) (*treeview.Tree[treeview.FileInfo], error)

var buildTree treeBuilderFunc = treeview.NewTreeFromFileSystem

// Files returns the regular files under root in depth first order.
//
// A root that is a regular file yields only itself. A root that does not exist
// returns an error satisfying errors.Is(err, fs.ErrNotExist).
func Files(ctx context.Context, root string) (iter.Seq[File], error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		f := newFile(root, info)
		return func(yield func(File) bool) {
			yield(f)
		}, nil
	}

	t, err := buildTree(ctx, root, false,
		treeview.WithMaxDepth[treeview.FileInfo](MaxWalkDepth),
		treeview.WithTraversalCap[treeview.FileInfo](MaxWalkEntries),
		treeview.WithFilterFunc(func(fi treeview.FileInfo) bool {
			// Skip macOS artifacts
			if fi.Name() == ".DS_Store" || strings.HasPrefix(fi.Name(), "._") {
				return false
			}
			if fi.IsDir() || fi.FileInfo.Mode().IsRegular() {
				return true
			}
			_, ok := linkTarget(fi.Path, fi.FileInfo)
			return ok
		}),
	)
	if err != nil {
		return nil, err
	}

	return func(yield func(File) bool) {
		for ni := range t.All(ctx) {
			data := ni.Node.Data()
			if data.IsDir() {
				continue
			}
			info := data.FileInfo
			if target, ok := linkTarget(data.Path, info); ok {
				info = target
			}
			if !yield(newFile(data.Path, info)) {
				return
			}
		}
	}, nil
}

// CountMedia counts the media files under root. A missing root has none.
func CountMedia(ctx context.Context, root string) (int, error) {
	files, err := Files(ctx, root)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	count := 0
	for f := range files {
		if f.IsMedia {
			count++
		}
	}
	return count, nil
}

// linkTarget follows a symlink and reports the target when it is a regular file.
func linkTarget(path string, info os.FileInfo) (os.FileInfo, bool) {
	if info == nil || info.Mode()&os.ModeSymlink == 0 {
		return nil, false
	}
	target, err := os.Stat(path)
	if err != nil || !target.Mode().IsRegular() {
		return nil, false
	}
	return target, true
}

func newFile(path string, info os.FileInfo) File {
	name := filepath.Base(path)
	return File{
		Path:    path,
		Name:    name,
		Ext:     ExtractExtension(name),
		Size:    info.Size(),
		IsMedia: IsMedia(name),
	}
}
