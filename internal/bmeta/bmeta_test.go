package bmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	info := New("v1.0.0", "", "abc123")
	assert.Equal(t, Info{Version: "v1.0.0", Date: "N/A", Commit: "abc123"}, info)
	assert.Equal(t, "screws v1.0.0 (commit abc123, built N/A)", info.String())
	assert.Len(t, info.Fields(), 3)
}
