package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add visitor logs", "add_visitor_logs"},
		{"Add-Visitor-Logs", "add_visitor_logs"},
		{"ADD_VISITOR_LOGS", "add_visitor_logs"},
		{"add__visitor__logs", "add_visitor_logs"},
		{"waiver flag v2", "waiver_flag_v2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "special_chars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	p, err := Create(dir, "add recovery columns")
	require.NoError(t, err)

	// Timestamp version, 14 digits
	assert.Len(t, p.Version, 14)
	assert.True(t, strings.HasSuffix(p.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(p.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(p.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(p.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)
	assert.Contains(t, upBase, "add_recovery_columns")

	for _, path := range []string{p.UpPath, p.DownPath} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "add recovery columns")
	}
}

func TestCreate_BlankName(t *testing.T) {
	_, err := Create(t.TempDir(), "   ")
	assert.Error(t, err)
}

func TestCreate_MakesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "db", "migrations")

	_, err := Create(nested, "init schema")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestList(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		"000001_init_schema.up.sql",
		"000001_init_schema.down.sql",
		"000002_add_visitor_logs.up.sql",
		"000002_add_visitor_logs.down.sql",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- sql"), 0644))
	}

	migrations, err := List(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"000001_init_schema", "000002_add_visitor_logs"}, migrations)
}

func TestList_MissingDirectory(t *testing.T) {
	migrations, err := List(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestList_IgnoresOtherEntries(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_init.up.sql"), []byte("-- sql"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_init.down.sql"), []byte("-- sql"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0755))

	migrations, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init"}, migrations)
}
