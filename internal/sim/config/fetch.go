package config

import (
	"fmt"
	"io"
	"net/http"

	"github.com/banshee-data/velocity.report/internal/httputil"
	"github.com/banshee-data/velocity.report/internal/sim/scene"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
)

// maxRemoteConfigSize bounds how much of a remote scene config body is
// read, mirroring the local maxConfigFileSize guard.
const maxRemoteConfigSize = maxConfigFileSize

// LoadSceneFromURL fetches a scene configuration document over HTTP via
// client and builds a Scene from it, applying the same size guard and
// degrees-to-radians conversion as LoadScene.
func LoadSceneFromURL(client httputil.HTTPClient, url string) (*scene.Scene, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, &simerr.IoError{Op: "get", Path: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &simerr.IoError{Op: "get", Path: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteConfigSize+1))
	if err != nil {
		return nil, &simerr.IoError{Op: "read", Path: url, Err: err}
	}
	if len(data) > maxRemoteConfigSize {
		return nil, &simerr.ConfigurationError{Msg: fmt.Sprintf("remote scene config too large (max %d bytes)", maxRemoteConfigSize)}
	}

	return decodeScene(data)
}
