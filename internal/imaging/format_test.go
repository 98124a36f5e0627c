package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantExt string
		wantErr bool
	}{
		{"png", PNG, ".png", false},
		{"PNG", PNG, ".png", false},
		{".jpg", JPEG, ".jpg", false},
		{"jpeg", JPEG, ".jpg", false},
		{"webp", WebP, ".webp", false},
		{" gif ", GIF, ".gif", false},
		{"bmp", PNG, "", true},
		{"", PNG, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantExt, got.Extension())
		})
	}
}

func TestOutputFormatMimeType(t *testing.T) {
	assert.Equal(t, "image/png", PNG.MimeType())
	assert.Equal(t, "image/jpeg", JPEG.MimeType())
	assert.Equal(t, "image/webp", WebP.MimeType())
	assert.Equal(t, "image/gif", GIF.MimeType())
}

func TestParseModes(t *testing.T) {
	flipTests := []struct {
		input string
		want  FlipMode
	}{
		{"", FlipHorizontal},
		{"horizontal", FlipHorizontal},
		{"H", FlipHorizontal},
		{"vertical", FlipVertical},
		{"v", FlipVertical},
	}
	for _, tt := range flipTests {
		got, err := ParseFlipMode(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
	_, err := ParseFlipMode("diagonal")
	assert.Error(t, err)

	mergeTests := []struct {
		input string
		want  MergeMode
	}{
		{"", MergeHorizontal},
		{"Horizontal", MergeHorizontal},
		{"vertical", MergeVertical},
		{"v", MergeVertical},
	}
	for _, tt := range mergeTests {
		got, err := ParseMergeMode(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
	_, err = ParseMergeMode("grid")
	assert.Error(t, err)
}
