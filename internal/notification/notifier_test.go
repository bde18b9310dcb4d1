package notification

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	t.Parallel()

	n := NewError("Cannot open logs", "directory missing").
		WithComponent("shell").
		WithMetadata("path", "/tmp/logs")

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, TypeError, n.Type)
	assert.Equal(t, "shell", n.Component)
	assert.Equal(t, "/tmp/logs", n.Metadata["path"])
	assert.False(t, n.Timestamp.IsZero())
}

func TestCloneCopiesMetadata(t *testing.T) {
	t.Parallel()

	n := NewNotification(TypeInfo, "t", "m").WithMetadata("k", "v")
	clone := n.Clone()
	clone.Metadata["k"] = "changed"

	assert.Equal(t, "v", n.Metadata["k"])
	assert.Nil(t, (*Notification)(nil).Clone())
}

func TestConsoleNotifierWritesMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		notif *Notification
	}{
		{"error", NewError("Open failed", "log directory does not exist")},
		{"warning", NewNotification(TypeWarning, "Heads up", "export took long")},
		{"info", NewNotification(TypeInfo, "", "archive written")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			NewConsoleNotifier(buf).Notify(tc.notif)

			assert.Contains(t, buf.String(), tc.notif.Message)
			if tc.notif.Title != "" {
				assert.Contains(t, buf.String(), tc.notif.Title)
			}
		})
	}
}

func TestConsoleNotifierIgnoresNil(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	NewConsoleNotifier(buf).Notify(nil)
	assert.Empty(t, buf.String())
}

func TestRecorderConcurrentNotify(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Notify(NewError("t", "m"))
		}()
	}
	wg.Wait()

	got := rec.Notifications()
	require.Len(t, got, 20)
	for _, n := range got {
		assert.Equal(t, TypeError, n.Type)
	}
}
