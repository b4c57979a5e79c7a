package knowledge_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlogic/certainty"
	"github.com/katalvlaran/lvlogic/knowledge"
)

func TestWatch_RevalidatesOnChange(t *testing.T) {
	dir := t.TempDir()
	good := []byte("kind: certainty\nname: w\nrules:\n  - {id: A, if: [x], then: P, cf: 0.5}\n")
	bad := []byte("kind: certainty\nname: w\nrules:\n  - {id: A, if: [x], then: P, cf: 5}\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "w.yaml"), good, 0o644))

	rounds := make(chan []knowledge.FileResult, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- knowledge.Watch(ctx, dir, 20*time.Millisecond, func(r []knowledge.FileResult) { rounds <- r }, nil)
	}()

	next := func() []knowledge.FileResult {
		select {
		case r := <-rounds:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("no validation round")

			return nil
		}
	}

	first := next()
	require.Len(t, first, 1)
	assert.True(t, first[0].OK())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "w.yaml"), bad, 0o644))
	var last []knowledge.FileResult
	for deadline := time.Now().Add(5 * time.Second); time.Now().Before(deadline); {
		last = next()
		if len(last) == 1 && !last[0].OK() {
			break
		}
	}
	require.Len(t, last, 1)
	assert.ErrorIs(t, last[0].Err, certainty.ErrInvalidRule)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	err := knowledge.Watch(context.Background(), filepath.Join(t.TempDir(), "absent"), 0, func([]knowledge.FileResult) {}, nil)
	assert.Error(t, err)
}
