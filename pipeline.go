package pixelize

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const numWorkers = 10

// ErrSameDirectory is returned when asked to write renderings into the
// directory being read
var ErrSameDirectory = errors.New("output directory is the input directory")

var imageExtensions = map[string]struct{}{
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".webp": {},
}

func isImage(file string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(file))]
	return ok
}

// outputPath returns where the rendering of file, found under base, is
// written under dir
func outputPath(base, dir, file string) (string, error) {
	rel, err := filepath.Rel(base, file)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, strings.TrimSuffix(rel, filepath.Ext(rel))+".png"), nil
}

func (r *Renderer) findImages(ctx context.Context, base, skip string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Don't descend into our own output
			if info.Mode().IsDir() && file == skip {
				return filepath.SkipDir
			}

			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (r *Renderer) writeFile(file, target string, req Request, preview bool) error {
	b, err := r.RenderFile(file, req, preview)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			r.logger.Printf("Skipping \"%s\": %s\n", file, err)
			return nil
		}
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	return os.WriteFile(target, b, 0o644)
}

func (r *Renderer) imageWorker(ctx context.Context, in <-chan string, base, dir string, req Request, preview bool) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			target, err := outputPath(base, dir, file)
			if err != nil {
				errc <- err
				return
			}

			if err := r.writeFile(file, target, req, preview); err != nil {
				errc <- err
				return
			}
			r.logger.Printf("Rendered \"%s\" to \"%s\"\n", file, target)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Batch renders every image found under path with req and writes each
// result as a PNG under dir, mirroring the directory structure
func (r *Renderer) Batch(path, dir string, req Request, preview bool) error {
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

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := r.findImages(ctx, base, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := r.imageWorker(ctx, files, base, dir, req, preview)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
