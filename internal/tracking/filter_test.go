package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Analyze(t *testing.T) {
	f := MustNewFilter(DefaultParams)

	tests := []struct {
		name      string
		in        string
		wantDirty bool
		wantClean string
		wantParam []Param
	}{
		{
			name:      "utm medium",
			in:        "https://example.com/?utm_medium=test&ok=ok",
			wantDirty: true,
			wantClean: "https://example.com/?ok=ok",
			wantParam: []Param{{Key: "utm_medium", Value: "test"}},
		},
		{
			name:      "fbclid",
			in:        "https://example.com/test?fbclid=test&ok=ok",
			wantDirty: true,
			wantClean: "https://example.com/test?ok=ok",
			wantParam: []Param{{Key: "fbclid", Value: "test"}},
		},
		{
			name:      "no query",
			in:        "https://example.com",
			wantClean: "https://example.com",
			wantParam: []Param{},
		},
		{
			name:      "clean query",
			in:        "https://example.com/?a=1&b=2",
			wantClean: "https://example.com/?a=1&b=2",
			wantParam: []Param{},
		},
		{
			name:      "all tracking",
			in:        "https://example.com/p?utm_source=x&utm_campaign=y",
			wantDirty: true,
			wantClean: "https://example.com/p",
			wantParam: []Param{{Key: "utm_source", Value: "x"}, {Key: "utm_campaign", Value: "y"}},
		},
		{
			name:      "order and encoding kept",
			in:        "https://example.com/a%20b?z=%2F1&utm_term=q&a=2#frag",
			wantDirty: true,
			wantClean: "https://example.com/a%20b?z=%2F1&a=2#frag",
			wantParam: []Param{{Key: "utm_term", Value: "q"}},
		},
		{
			name:      "case insensitive key",
			in:        "https://example.com/?UTM_Source=x&k=v",
			wantDirty: true,
			wantClean: "https://example.com/?k=v",
			wantParam: []Param{{Key: "UTM_Source", Value: "x"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.Analyze(tt.in)
			assert.Equal(t, tt.in, res.URL)
			assert.Equal(t, tt.wantDirty, res.IsDirty)
			assert.Equal(t, tt.wantClean, res.CleanURL)
			assert.Equal(t, tt.wantParam, res.TrackingParams)
		})
	}
}

func TestNewFilter_Regexp(t *testing.T) {
	f, err := NewFilter([]string{"re:^mc_"})
	require.NoError(t, err)

	assert.True(t, f.IsTracking("mc_cid"))
	assert.False(t, f.IsTracking("utm_source"))

	res := f.Analyze("https://example.com/?mc_eid=1&id=2")
	assert.True(t, res.IsDirty)
	assert.Equal(t, "https://example.com/?id=2", res.CleanURL)

	_, err = NewFilter([]string{"re:("})
	require.Error(t, err)
}
