// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// maxEventLine bounds one exported event.
const maxEventLine = 4 << 20

// Replay applies a JSON Lines export of legacy events, one [Event] per
// line, in order. Blank lines are skipped. It stops at the first event
// that cannot be applied and reports how many were.
func (b *Bridge) Replay(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxEventLine)

	applied := 0
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return applied, fmt.Errorf("line %d: %w: %w", line, ErrMalformedEvent, err)
		}
		if err := b.Handle(ctx, ev); err != nil {
			return applied, fmt.Errorf("line %d: %w", line, err)
		}
		applied++
	}
	if err := scanner.Err(); err != nil {
		return applied, fmt.Errorf("read legacy events: %w", err)
	}

	return applied, nil
}

// ReplayFile is [Bridge.Replay] over the file at path.
func (b *Bridge) ReplayFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open legacy events: %w", err)
	}
	defer f.Close()

	n, err := b.Replay(ctx, f)
	b.logger.Info().Str("func", "Bridge.ReplayFile").Str("path", path).Int("applied", n).Err(err).Msg("legacy events imported")
	return n, err
}
