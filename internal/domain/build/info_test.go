package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_Short(t *testing.T) {
	assert.Equal(t, "v1.2.0 (a1b2c3d)", Info{Version: "v1.2.0", Commit: "a1b2c3d"}.Short())
	assert.Equal(t, "dev", Info{Version: "dev", Commit: "unknown"}.Short())
	assert.Equal(t, "dev", Info{Version: "dev"}.Short())
}
