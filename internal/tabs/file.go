// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tabs

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/models"
)

const (
	messageExt = ".msg"
	// DefaultStaleAfter is how long message files are kept before the sweep
	// removes them.
	DefaultStaleAfter = 30 * time.Second
)

// FileChannel connects tabs running as separate processes on one device.
// Each message is a file written atomically (temp file + rename) into a
// shared directory; every participant watches the directory with fsnotify.
// The sender receives its own messages too.
type FileChannel struct {
	dir        string
	staleAfter time.Duration
	watcher    *fsnotify.Watcher
	logger     *logger.Logger

	subs subscribers

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewFileChannel creates dir when needed and starts watching it.
func NewFileChannel(dir string, logger *logger.Logger) (*FileChannel, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create tab channel dir %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err = watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch tab channel dir %s: %w", dir, err)
	}

	c := &FileChannel{
		dir:        dir,
		staleAfter: DefaultStaleAfter,
		watcher:    watcher,
		logger:     logger,
		done:       make(chan struct{}),
	}

	c.wg.Add(2)
	go c.processEvents()
	go c.sweepLoop()

	return c, nil
}

// Publish writes msg as a new message file.
func (c *FileChannel) Publish(_ context.Context, msg models.TabMessage) error {
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode tab message: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".pending-*")
	if err != nil {
		return fmt.Errorf("failed to create tab message: %w", err)
	}
	if _, err = tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write tab message: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write tab message: %w", err)
	}

	name := strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + strconv.FormatUint(rand.Uint64(), 36) + messageExt
	if err = os.Rename(tmp.Name(), filepath.Join(c.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish tab message: %w", err)
	}

	return nil
}

func (c *FileChannel) Subscribe() (<-chan models.TabMessage, func()) {
	return c.subs.add()
}

// Close stops watching and closes every subscription.
func (c *FileChannel) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		err = c.watcher.Close()
		c.wg.Wait()
		c.subs.close()
	})
	return err
}

func (c *FileChannel) processEvents() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return

		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			// a rename into the directory shows up as Create
			if !event.Has(fsnotify.Create) || !strings.HasSuffix(event.Name, messageExt) {
				continue
			}
			if msg, ok := c.read(event.Name); ok {
				c.subs.deliver(msg)
			}

		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warn().Err(err).Str("func", "FileChannel.processEvents").Msg("tab channel watcher error")
		}
	}
}

func (c *FileChannel) read(path string) (models.TabMessage, bool) {
	body, err := os.ReadFile(path)
	if err != nil {
		// swept or never fully visible; either way the message is gone
		return models.TabMessage{}, false
	}

	var msg models.TabMessage
	if err = json.Unmarshal(body, &msg); err != nil {
		c.logger.Warn().Err(err).Str("func", "FileChannel.read").Str("path", path).Msg("malformed tab message")
		return models.TabMessage{}, false
	}

	return msg, true
}

func (c *FileChannel) sweepLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.staleAfter)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep(time.Now().Add(-c.staleAfter))
		}
	}
}

// sweep removes message and temp files last modified before cutoff.
func (c *FileChannel) sweep(cutoff time.Time) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "FileChannel.sweep").Msg("failed to list tab channel dir")
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		_ = os.Remove(filepath.Join(c.dir, entry.Name()))
	}
}
