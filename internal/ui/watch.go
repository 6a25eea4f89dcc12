package ui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

// watchSet keeps fsnotify watching the explorer root, every expanded
// directory below it and the directory of the open file. Events are
// forwarded to the program through watchChan until done is closed.
type watchSet struct {
	watcher   *fsnotify.Watcher
	dirs      map[string]bool
	watchChan chan tea.Msg
	done      chan struct{}
}

func (m *Model) startWatching() tea.Cmd {
	if err := m.ensureWatcher(); err != nil {
		m.logger.Warn("watcher unavailable", "err", err)
		return nil
	}
	m.syncWatches()
	return m.waitForFileEvent()
}

func (m *Model) ensureWatcher() error {
	if m.watch != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watch = &watchSet{
		watcher:   watcher,
		dirs:      make(map[string]bool),
		watchChan: make(chan tea.Msg, 10),
		done:      make(chan struct{}),
	}
	go m.watch.loop()
	return nil
}

// syncWatches points the watcher at the expanded part of the tree and the
// open file.
func (m *Model) syncWatches() {
	if m.watch == nil {
		return
	}
	want := map[string]bool{}
	if m.explorer != nil {
		lines, _ := m.explorer.Lines()
		for _, line := range lines {
			if line.Node.IsDir && line.Node.Open {
				want[m.explorer.AbsPath(line.Node)] = true
			}
		}
	}
	if path := m.session.Path(); path != "" {
		want[filepath.Dir(path)] = true
	}

	for dir := range m.watch.dirs {
		if !want[dir] {
			_ = m.watch.watcher.Remove(dir)
			delete(m.watch.dirs, dir)
		}
	}
	for dir := range want {
		if m.watch.dirs[dir] {
			continue
		}
		if err := m.watch.watcher.Add(dir); err != nil {
			m.logger.Warn("watch failed", "dir", dir, "err", err)
			continue
		}
		m.watch.dirs[dir] = true
	}
}

func (w *watchSet) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !w.send(fileEventMsg{path: event.Name, op: event.Op}) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if !w.send(fileWatchErrMsg{err: err}) {
				return
			}
		case <-w.done:
			return
		}
	}
}

// send hands msg to the program. It gives up once the set is closed so a
// full channel cannot block the loop forever.
func (w *watchSet) send(msg tea.Msg) bool {
	select {
	case w.watchChan <- msg:
		return true
	case <-w.done:
		return false
	}
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	ch, done := m.watch.watchChan, m.watch.done
	return func() tea.Msg {
		select {
		case msg := <-ch:
			return msg
		case <-done:
			return nil
		}
	}
}

// handleFileEvent refreshes the explorer on structural changes and flags
// outside edits to the open file. The editor buffer is never reloaded.
func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	var cmds []tea.Cmd
	path := filepath.Clean(msg.path)

	if msg.op&(fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
		if err := m.refreshExplorer(); err != nil {
			m.logger.Warn("explorer refresh failed", "err", err)
		}
	}

	if open := m.session.Path(); open != "" && path == open && msg.op&fsnotify.Write != 0 {
		if data, err := os.ReadFile(open); err == nil && !m.session.MatchesDisk(string(data)) {
			m.logger.Info("file changed on disk", "path", open)
			cmds = append(cmds, m.setStatus(open+" changed on disk"))
		}
	}

	cmds = append(cmds, m.waitForFileEvent())
	return tea.Batch(cmds...)
}

// Close stops the filesystem watcher.
func (m *Model) Close() error {
	if m.watch == nil {
		return nil
	}
	close(m.watch.done)
	err := m.watch.watcher.Close()
	m.watch = nil
	return err
}
