package targets

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"

	"github.com/saucelabs/wdiorun/internal/target"
)

func TestList(t *testing.T) {
	dir := fs.NewDir(t, "configs",
		fs.WithFile("base.config.ts", ""),
		fs.WithFile("ios.config.ts", ""),
		fs.WithFile("df.ios.config.js", ""),
		fs.WithFile("df.android.config.js", ""),
		fs.WithFile("package.json", "{}"),
	)
	defer dir.Remove()

	tests := []struct {
		name    string
		pattern string
		want    []Target
	}{
		{
			name:    "all",
			pattern: "*",
			want: []Target{
				{Name: "base", Context: target.Local, File: "base.config.ts"},
				{Name: "df.android", Context: target.DeviceFarm, File: "df.android.config.js"},
				{Name: "df.ios", Context: target.DeviceFarm, File: "df.ios.config.js"},
				{Name: "ios", Context: target.Local, File: "ios.config.ts"},
			},
		},
		{
			name:    "device farm only",
			pattern: "df.*",
			want: []Target{
				{Name: "df.android", Context: target.DeviceFarm, File: "df.android.config.js"},
				{Name: "df.ios", Context: target.DeviceFarm, File: "df.ios.config.js"},
			},
		},
		{
			name:    "no match",
			pattern: "web",
			want:    []Target{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := List(dir.Path(), tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, []Target{{Name: "ios", Context: target.Local, File: "ios.config.ts"}})

	out := buf.String()
	assert.Contains(t, out, "ios.config.ts")
	assert.Contains(t, out, "local")
	assert.Contains(t, out, "1 files")

	buf.Reset()
	renderTable(&buf, nil)
	assert.Equal(t, "No targets found\n", buf.String())
}
