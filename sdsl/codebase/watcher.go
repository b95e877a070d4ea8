package codebase

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Change reports a file that was parsed again or removed. Info is nil for
// a removal.
type Change struct {
	Path string
	Info *FileInfo
}

// FileWatcher keeps a Codebase in sync with the file system using OS
// notifications. Directories created after Start are watched as well.
type FileWatcher struct {
	codebase *Codebase
	w        *fsnotify.Watcher
	changes  chan Change
}

func NewFileWatcher(c *Codebase) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		codebase: c,
		w:        w,
		changes:  make(chan Change, 64),
	}, nil
}

// Changes delivers one Change per reparsed or removed file. It is closed
// when Run returns.
func (fw *FileWatcher) Changes() <-chan Change {
	return fw.changes
}

// Run watches the codebase root until ctx is done.
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer close(fw.changes)
	defer fw.w.Close()

	if err := fw.addTree(fw.codebase.RootDir()); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if change, ok := fw.handle(ev); ok {
				select {
				case fw.changes <- change:
				case <-ctx.Done():
					return nil
				}
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch: %s", err)
		}
	}
}

func (fw *FileWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		log.Debugf("watching %s", path)
		return fw.w.Add(path)
	})
}

// handle applies one file system event to the codebase.
func (fw *FileWatcher) handle(ev fsnotify.Event) (Change, bool) {
	if ev.Has(fsnotify.Create) {
		if isDir(ev.Name) {
			if err := fw.addTree(ev.Name); err != nil {
				log.Warningf("watch %s: %s", ev.Name, err)
			}
			return Change{}, false
		}
	}
	if !IsSource(ev.Name) {
		return Change{}, false
	}
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		if fw.codebase.GetFile(ev.Name) == nil {
			return Change{}, false
		}
		fw.codebase.RemoveFile(ev.Name)
		return Change{Path: ev.Name}, true
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		info, err := fw.codebase.ScanFile(ev.Name)
		if err != nil {
			log.Warningf("%s", err)
			return Change{}, false
		}
		return Change{Path: ev.Name, Info: info}, true
	}
	return Change{}, false
}
