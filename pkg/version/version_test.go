package version_test

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	// Packages
	version "github.com/mutablelogic/go-meteo/pkg/version"
	assert "github.com/stretchr/testify/assert"
)

func Test_version_001(t *testing.T) {
	assert := assert.New(t)

	info := version.Get("meteo")
	assert.Equal("meteo", info.Name)
	assert.NotEmpty(info.Version)
	assert.Equal(runtime.Version(), info.Compiler)
	assert.True(strings.HasPrefix(version.UserAgent("meteo"), "meteo/"))
}

func Test_version_002(t *testing.T) {
	assert := assert.New(t)

	version.GitTag = "v1.2.3"
	t.Cleanup(func() { version.GitTag = "" })
	assert.Equal("v1.2.3", version.Version())

	var value map[string]any
	if assert.NoError(json.Unmarshal(version.JSON("meteo"), &value)) {
		assert.Equal("v1.2.3", value["version"])
		assert.Equal("v1.2.3", value["tag"])
		assert.NotContains(value, "branch")
	}
}
