package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/pkg/mailer"
)

func TestSender_Send(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "outbox")
	s, err := New(Config{Dir: dir})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	id, err := s.Send(context.Background(), &mailer.Email{
		To:      []string{"ada@example.com"},
		Subject: "Welcome Email!",
		HTML:    "<p>Hello</p>",
		Text:    "Hello",
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlFile, jsonFile string
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".html"):
			htmlFile = e.Name()
		case strings.HasSuffix(e.Name(), ".json"):
			jsonFile = e.Name()
		}
	}
	assert.True(t, strings.HasPrefix(htmlFile, "2026_01_02_030405_welcome_email_"))

	html, err := os.ReadFile(filepath.Join(dir, htmlFile))
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello</p>", string(html))

	raw, err := os.ReadFile(filepath.Join(dir, jsonFile))
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, id, meta["message_id"])
	assert.Equal(t, "Welcome Email!", meta["subject"])
}

func TestNew_RequiresDir(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	require.ErrorIs(t, err, mailer.ErrInvalidConfig)
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello_world", sanitizeFilename("Hello World"))
	assert.Equal(t, "email", sanitizeFilename("!!!"))
	assert.Len(t, sanitizeFilename(strings.Repeat("a", 100)), 60)
}
