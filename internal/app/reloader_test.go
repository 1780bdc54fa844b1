package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	fsw "github.com/corey/demoapp/internal/adapters/fsnotify"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuiet = 20 * time.Millisecond

// waitForChange waits up to timeout for the reloader to fire.
func waitForChange(r *Reloader, timeout time.Duration) (string, bool) {
	select {
	case p := <-r.Changes():
		return p, true
	case <-time.After(timeout):
		return "", false
	}
}

func TestReloader_ExplicitPathsMatchEverything(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	fw := &fakeWatcher{}

	r, err := NewReloader(fw, []string{"/a", "/b"}, log)
	require.NoError(t, err)
	r.quiet = testQuiet
	require.NoError(t, r.Start())
	assert.Equal(t, []string{"/a", "/b"}, fw.roots)

	fw.fire("/b/anything.txt")

	p, ok := waitForChange(r, time.Second)
	require.True(t, ok, "expected a change")
	assert.Equal(t, "/b/anything.txt", p)
}

func TestReloader_DefaultWatchesExecutableOnly(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	fw := &fakeWatcher{}

	r, err := NewReloader(fw, nil, log)
	require.NoError(t, err)
	r.quiet = testQuiet
	require.NoError(t, r.Start())

	exe, err := executablePath()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Dir(exe)}, fw.roots)

	fw.fire(filepath.Join(filepath.Dir(exe), "some-other-binary"))
	if p, ok := waitForChange(r, 5*testQuiet); ok {
		t.Fatalf("unexpected change for %s", p)
	}

	fw.fire(exe)
	p, ok := waitForChange(r, time.Second)
	require.True(t, ok, "expected a change for the executable")
	assert.Equal(t, exe, p)
}

func TestReloader_CoalescesBurst(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	fw := &fakeWatcher{}

	r := newReloader(fw, []string{"/src"}, func(string) bool { return true }, log)
	r.quiet = testQuiet
	require.NoError(t, r.Start())

	fw.fire("/src/one")
	fw.fire("/src/two")
	fw.fire("/src/three")

	p, ok := waitForChange(r, time.Second)
	require.True(t, ok)
	assert.Equal(t, "/src/three", p)

	if extra, ok := waitForChange(r, 5*testQuiet); ok {
		t.Fatalf("burst should coalesce, got extra %s", extra)
	}
}

func TestReloader_WaitsForQuiet(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	fw := &fakeWatcher{}

	r := newReloader(fw, []string{"/src"}, func(string) bool { return true }, log)
	r.quiet = 100 * time.Millisecond
	require.NoError(t, r.Start())

	// Changes arriving faster than the quiet period keep postponing the reload
	for i := 0; i < 5; i++ {
		fw.fire("/src/demoapp")
		if p, ok := waitForChange(r, 30*time.Millisecond); ok {
			t.Fatalf("reload fired mid-burst for %s", p)
		}
	}

	_, ok := waitForChange(r, time.Second)
	assert.True(t, ok, "expected a change once writes stopped")
}

func TestReloader_StopDropsPending(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	fw := &fakeWatcher{}

	r := newReloader(fw, []string{"/src"}, func(string) bool { return true }, log)
	r.quiet = testQuiet
	require.NoError(t, r.Start())

	fw.fire("/src/demoapp")
	require.NoError(t, r.Stop())

	if p, ok := waitForChange(r, 5*testQuiet); ok {
		t.Fatalf("change %s delivered after Stop", p)
	}
}

func TestReloader_Stop(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	fw := &fakeWatcher{}

	r := newReloader(fw, []string{"/src"}, func(string) bool { return true }, log)
	require.NoError(t, r.Stop())
	require.NoError(t, r.Stop())
	assert.Equal(t, 2, fw.stops)
}

func TestReloader_WaitsForChunkedBinaryWrite(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "demoapp")
	require.NoError(t, os.WriteFile(bin, []byte("old build"), 0755))

	w, err := fsw.NewWatcher()
	require.NoError(t, err)

	log, _ := logtest.NewNullLogger()
	r := newReloader(w, []string{dir}, func(p string) bool { return p == bin }, log)
	r.quiet = 300 * time.Millisecond
	require.NoError(t, r.Start())
	t.Cleanup(func() { r.Stop() })
	time.Sleep(50 * time.Millisecond)

	f, err := os.OpenFile(bin, os.O_WRONLY|os.O_TRUNC, 0755)
	require.NoError(t, err)

	chunk := []byte("0123456789ab")
	for i := 0; i < 4; i++ {
		_, err := f.Write(chunk)
		require.NoError(t, err)
		if p, ok := waitForChange(r, 60*time.Millisecond); ok {
			f.Close()
			t.Fatalf("reload fired for %s while the writer was still active", p)
		}
	}
	require.NoError(t, f.Close())
	lastWrite := time.Now()

	p, ok := waitForChange(r, 3*time.Second)
	require.True(t, ok, "expected a change after the writer went quiet")
	assert.Equal(t, bin, p)
	assert.GreaterOrEqual(t, time.Since(lastWrite), 200*time.Millisecond)

	info, err := os.Stat(bin)
	require.NoError(t, err)
	assert.Equal(t, int64(4*len(chunk)), info.Size())
}
