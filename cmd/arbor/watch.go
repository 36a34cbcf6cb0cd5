package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arborfw/arbor/app/routes"
	"github.com/arborfw/arbor/cmd/arbor/internal/config"
	"github.com/arborfw/arbor/cmd/arbor/internal/ui"
	"github.com/arborfw/arbor/pkg/reactive"
	"github.com/arborfw/arbor/pkg/scheduler"
	"github.com/arborfw/arbor/pkg/vango/vdom"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCommand() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the demo app's routes and re-render on change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(projectPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runWatch(cfg)
		},
	}

	cmd.Flags().StringVar(&projectPath, "project", ".", "project directory containing arbor.yaml")
	return cmd
}

// runWatch owns a Scope for the lifetime of the watch session: a
// revision State bumped once per debounced fsnotify batch, a Watch
// on that revision that marks the scheduler's fiber dirty and flushes
// it synchronously, and a fiber that re-renders the demo index page.
// This is the Watch/scheduler path a live re-render would use,
// without needing a browser attached.
func runWatch(cfg *config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range cfg.Watch.Globs {
		if err := addRecursive(watcher, root); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
	}

	scope := reactive.NewScope(false)
	defer scope.Stop()

	sched := scheduler.NewScheduler()

	renderCount := 0
	patchCount := 0
	sched.SetPatchApplier(func(patches []vdom.Patch) {
		patchCount += len(patches)
	})

	fiber := sched.CreateFiber(func() *vdom.VNode {
		renderCount++
		return routes.IndexPage()
	}, nil)

	var revision *reactive.State[int]
	scope.Run(func() {
		revision = reactive.NewState(0)
		reactive.Watch(revision.Get, func(newVal, oldVal int) {
			sched.MarkDirty(fiber)
			sched.Flush()
		}, reactive.WatchOptions{})
	})

	// Prime the fiber's baseline render so the first real edit diffs
	// against something instead of nil.
	sched.MarkDirty(fiber)
	sched.Flush()

	program := tea.NewProgram(ui.NewModel(cfg.Addr()))

	go func() {
		debounce := time.NewTimer(0)
		if !debounce.Stop() {
			<-debounce.C
		}
		var pending string

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				pending = event.Name
				debounce.Reset(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond)

			case <-debounce.C:
				revision.Set(revision.Get() + 1)
				program.Send(ui.Tick{
					Path:        pending,
					FiberCount:  sched.FiberCount(),
					PatchCount:  patchCount,
					RenderCount: renderCount,
					At:          time.Now(),
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				_ = err
			}
		}
	}()

	_, err = program.Run()
	return err
}

// addRecursive registers root and every directory beneath it with
// watcher; fsnotify itself only watches one level per call.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
