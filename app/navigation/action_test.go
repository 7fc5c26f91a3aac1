package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionStatic(t *testing.T) {
	for _, action := range StaticActions() {
		target, err := ParseAction(action)
		require.NoError(t, err, action)
		assert.NotEmpty(t, target.State)
		assert.Empty(t, target.EntryID)
	}
	target, err := ParseAction("hfiles")
	require.NoError(t, err)
	assert.Equal(t, StateHelpFiles, target.State)
}

func TestParseActionComposite(t *testing.T) {
	cases := []struct {
		data string
		want Target
	}{
		{"download_1", Target{State: StateEntrySummary, EntryID: "1"}},
		{"download_local_build", Target{State: StateEntrySummary, EntryID: "local_build"}},
		{"arch_2_arm64", Target{State: StateVariantDetail, EntryID: "2", Arch: "arm64"}},
		{"arch_my_app_x86", Target{State: StateVariantDetail, EntryID: "my_app", Arch: "x86"}},
	}
	for _, tc := range cases {
		got, err := ParseAction(tc.data)
		require.NoError(t, err, tc.data)
		assert.Equal(t, tc.want, got, tc.data)
	}
}

func TestParseActionRejectsMalformed(t *testing.T) {
	for _, data := range []string{"", "download_", "arch_", "arch_2", "arch__x86", "arch_2_", "unknown", "Help"} {
		_, err := ParseAction(data)
		assert.ErrorIs(t, err, ErrUnknownAction, data)
	}
}

func TestParseFilesArgs(t *testing.T) {
	target, err := ParseFilesArgs([]string{"list"})
	require.NoError(t, err)
	assert.Equal(t, StateFileList, target.State)

	target, err = ParseFilesArgs([]string{"GET", "42"})
	require.NoError(t, err)
	assert.Equal(t, Target{State: StateEntrySummary, EntryID: "42"}, target)

	for _, args := range [][]string{nil, {"get"}, {"list", "x"}, {"delete", "1"}, {"get", "1", "2"}} {
		_, err := ParseFilesArgs(args)
		assert.ErrorIs(t, err, ErrInvalidCommand, args)
	}
}
