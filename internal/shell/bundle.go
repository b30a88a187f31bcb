// Package shell hosts the pieces the desktop wrapper needs: serving the
// built UI and running the backend next to the terminal.
package shell

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ServeBundle serves the built UI in dir from r. Unknown paths outside the
// API fall back to index.html so client-side routes survive a reload.
func ServeBundle(r *gin.Engine, dir string) error {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return errors.Wrapf(err, "bundle %s has no index.html", dir)
	}

	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/") || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
			return
		}

		if file, ok := bundleFile(dir, p); ok {
			c.File(file)
			return
		}
		c.File(index)
	})
	return nil
}

// bundleFile maps a URL path to a regular file inside dir.
func bundleFile(dir, urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	file := filepath.Join(dir, filepath.FromSlash(clean))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "", false
	}
	return file, true
}
