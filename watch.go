package pixelize

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch renders every image created or modified in the directory path with
// req, writing each result under dir, until ctx is cancelled. Images that
// fail to render, usually because they are still being written, are logged
// and skipped.
func (r *Renderer) Watch(ctx context.Context, path, dir string, req Request, preview bool) error {
	base, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	dir, err = filepath.Abs(dir)
	if err != nil {
		return err
	}

	if dir == base {
		return ErrSameDirectory
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(base); err != nil {
		return err
	}
	r.logger.Printf("Watching \"%s\"\n", base)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			if name := filepath.Base(event.Name); name[0] == '.' || !isImage(name) {
				continue
			}

			target, err := outputPath(base, dir, event.Name)
			if err != nil {
				return err
			}

			if err := r.writeFile(event.Name, target, req, preview); err != nil {
				r.logger.Printf("Unable to render \"%s\": %s\n", event.Name, err)
				continue
			}
			r.logger.Printf("Rendered \"%s\" to \"%s\"\n", event.Name, target)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
