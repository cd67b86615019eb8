package indexer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

const outputTail = 2048

// Magento rebuilds indexers through the host bin/magento CLI.
type Magento struct {
	Root string // Magento installation directory
	PHP  string // php binary
	Out  io.Writer
	Log  logrus.FieldLogger
}

// Reindex runs `php bin/magento indexer:reindex <id>` and waits for it to finish.
func (m *Magento) Reindex(ctx context.Context, id string) error {
	php := m.PHP
	if php == "" {
		php = "php"
	}
	out := m.Out
	if out == nil {
		out = io.Discard
	}
	cmd := exec.CommandContext(ctx, php, "bin/magento", "indexer:reindex", id)
	cmd.Dir = m.Root
	var buf bytes.Buffer
	cmd.Stdout = io.MultiWriter(out, &buf)
	cmd.Stderr = io.MultiWriter(out, &buf)
	if m.Log != nil {
		m.Log.WithFields(logrus.Fields{"indexer": id, "dir": m.Root}).Debug("running magento reindex")
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("magento indexer:reindex %s: %w: %s", id, err, tail(buf.String()))
	}
	return nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > outputTail {
		s = "..." + s[len(s)-outputTail:]
	}
	return s
}
