package catalog

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSampleDocument(t *testing.T) {
	data, err := os.ReadFile("testdata/files.json")
	require.NoError(t, err)

	c, err := Parse(data, nil)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	assert.Empty(t, c.Issues)

	foo, ok := c.Find("1")
	require.True(t, ok)
	assert.False(t, foo.MultipleArch)
	assert.Equal(t, Variant{Architecture: "arm64", Link: "http://x/y"}, foo.Primary)
	assert.Empty(t, foo.Architectures)

	bar, ok := c.Find("2")
	require.True(t, ok)
	assert.True(t, bar.IsMod)
	require.Len(t, bar.Architectures, 2)
	assert.Equal(t, "12 MB", bar.Architectures[0].FileSize)
	assert.Equal(t, "x86", bar.Architectures[1].Architecture)

	local, ok := c.Find("local_build")
	require.True(t, ok)
	assert.True(t, local.Primary.HasFile())
	assert.False(t, local.Primary.HasLink())
	assert.Empty(t, local.Author)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"empty":          {"", ErrUnavailable},
		"syntax":         {`{"apkFiles": [`, ErrUnavailable},
		"no list":        {`{"files": []}`, ErrMalformed},
		"null list":      {`{"apkFiles": null}`, ErrMalformed},
		"object list":    {`{"apkFiles": {"id": "1"}}`, ErrMalformed},
		"array document": {`[{"id": "1"}]`, ErrMalformed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestParseEmptyList(t *testing.T) {
	c, err := Parse([]byte(`{"apkFiles": []}`), nil)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
}

func TestParseSkipsBadlyTypedEntries(t *testing.T) {
	doc := `{"apkFiles": [
		{"id": 7, "name": "numeric id", "link": "l"},
		"not an object",
		{"id": "ok", "name": "Fine", "link": "l"},
		{"id": "nolink", "name": "No link"}
	]}`
	c, err := Parse([]byte(doc), nil)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	require.Len(t, c.Issues, 3)
	assert.Equal(t, Issue{Index: 0, Reason: "invalid_entry"}, c.Issues[0])
	assert.Equal(t, Issue{Index: 1, Reason: "invalid_entry"}, c.Issues[1])
	assert.Equal(t, Issue{Index: 3, EntryID: "nolink", Reason: "no_deliverable"}, c.Issues[2])
}

func TestParseTrimsAndIgnoresShapeOfOtherMode(t *testing.T) {
	doc := `{"apkFiles": [{
		"id": " 5 ", "name": " Five ", "multipleArch": false,
		"architecture": "arm64", "link": "l",
		"architectures": [{"architecture": "x86", "link": "ignored"}]
	}]}`
	c, err := Parse([]byte(doc), nil)
	require.NoError(t, err)
	e, ok := c.Find("5")
	require.True(t, ok)
	assert.Equal(t, "Five", e.Name)
	assert.Empty(t, e.Architectures)
}
