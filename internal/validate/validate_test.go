package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	workDir := t.TempDir()
	inside := filepath.Join(workDir, "docs")
	require.NoError(t, os.MkdirAll(inside, 0o755))

	outside := t.TempDir()
	outsideFile := filepath.Join(outside, "config.yml")
	require.NoError(t, os.WriteFile(outsideFile, []byte("a: 1\n"), 0o644))

	tests := []struct {
		name       string
		candidates []string
		want       []string
	}{
		{
			name:       "contained and existing",
			candidates: []string{inside},
			want:       nil,
		},
		{
			name:       "outside working directory",
			candidates: []string{outsideFile},
			want:       []string{outsideFile},
		},
		{
			name:       "contained but missing",
			candidates: []string{filepath.Join(workDir, "missing")},
			want:       []string{filepath.Join(workDir, "missing")},
		},
		{
			name:       "empty candidates are skipped",
			candidates: []string{"", inside, ""},
			want:       nil,
		},
		{
			name:       "mixed",
			candidates: []string{inside, outsideFile, filepath.Join(workDir, "missing")},
			want:       []string{outsideFile, filepath.Join(workDir, "missing")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(workDir, tt.candidates)
			assert.ElementsMatch(t, tt.want, got.Sorted())
		})
	}
}

func TestCheck_DuplicatesCollapse(t *testing.T) {
	workDir := t.TempDir()
	bad := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(bad, []byte("a: 1\n"), 0o644))

	// The same path referenced from several candidate sources is
	// reported once.
	got := Check(workDir, []string{bad, bad, bad})
	assert.Len(t, got, 1)
	assert.Equal(t, []string{bad}, got.Sorted())
}

func TestCheck_PrefixComparisonIsStringBased(t *testing.T) {
	base := t.TempDir()
	workDir := filepath.Join(base, "proj")
	sibling := filepath.Join(base, "projects")
	require.NoError(t, os.MkdirAll(workDir, 0o755))
	require.NoError(t, os.MkdirAll(sibling, 0o755))

	// Documented looseness: containment is a plain string-prefix
	// comparison, so a sibling sharing the prefix counts as contained.
	got := Check(workDir, []string{sibling})
	assert.True(t, got.Empty())
}

func TestViolations_Partition(t *testing.T) {
	workDir := t.TempDir()
	existing := filepath.Join(t.TempDir(), "real.yml")
	require.NoError(t, os.WriteFile(existing, []byte("a: 1\n"), 0o644))
	missing := filepath.Join(workDir, "ghost.yml")

	v := Check(workDir, []string{existing, missing})
	outside, gone := v.Partition()
	assert.Equal(t, []string{existing}, outside)
	assert.Equal(t, []string{missing}, gone)
}

func TestViolations_Sorted(t *testing.T) {
	v := Violations{}
	v.Add("/b")
	v.Add("/a")
	v.Add("/c")
	assert.Equal(t, []string{"/a", "/b", "/c"}, v.Sorted())
}
