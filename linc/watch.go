package main

import (
	"errors"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFile checks the file at path,
// then checks it again each time it is written,
// until done is closed or the watcher fails.
//
// The directory is watched rather than the file,
// since editors often save by replacing the file.
func watchFile(path string, d *driver, done <-chan struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	d.run(path)
	for {
		select {
		case <-done:
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			d.run(path)
		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			log.Printf("watch %s: %s", path, err)
		}
	}
}
