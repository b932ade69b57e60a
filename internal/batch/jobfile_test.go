// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	s := Session{
		Source:   "/data/pdfs",
		Dest:     "/data/marked",
		Keywords: []string{"alpha", "Fail-Safe", "deep learning"},
	}
	summary := &RunSummary{
		Files:     12,
		Hits:      340,
		Failed:    1,
		Timestamp: time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC),
	}

	require.NoError(t, WriteJobFile(path, s, summary))

	jf, err := ReadJobFile(path)
	require.NoError(t, err)

	assert.Equal(t, s, jf.Batch.ToSession())
	require.NotNil(t, jf.Summary)
	assert.Equal(t, *summary, *jf.Summary)
}

func TestJobFileWithoutSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	s := Session{Source: "/pdfs", Keywords: []string{"kw"}}

	require.NoError(t, WriteJobFile(path, s, nil))

	jf, err := ReadJobFile(path)
	require.NoError(t, err)
	assert.Nil(t, jf.Summary)
	assert.Equal(t, s, jf.Batch.ToSession())
	assert.Empty(t, jf.Batch.Dest)
}

func TestReadJobFileMissing(t *testing.T) {
	_, err := ReadJobFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestReadJobFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch: [not a mapping"), 0o644))
	_, err := ReadJobFile(path)
	assert.Error(t, err)
}
