package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
}

// Inbox watches a directory and hands every newly created image file to
// a handler. A handler failure skips that file and keeps watching.
type Inbox struct {
	dir string
	log zerolog.Logger
}

func NewInbox(dir string, log zerolog.Logger) *Inbox {
	return &Inbox{dir: dir, log: log}
}

// Run blocks until the context is cancelled. The watcher is released on
// every exit path.
func (i *Inbox) Run(ctx context.Context, handle func(ctx context.Context, path string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(i.dir); err != nil {
		return fmt.Errorf("watch %s: %w", i.dir, err)
	}

	i.log.Info().Str("dir", i.dir).Msg("vigiando diretorio de entrada")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !imageExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			if err := handle(ctx, event.Name); err != nil {
				i.log.Error().Err(err).Str("image", event.Name).Msg("imagem ignorada")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			i.log.Error().Err(err).Msg("erro do watcher")
		}
	}
}
