package server

import (
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/vango-dev/sitekit/internal/config"
)

// hiddenFiles are never served even when they sit next to the page.
var hiddenFiles = map[string]bool{
	config.ConfigFileName: true,
	"sitekit.yaml":        true,
	"sitekit.yml":         true,
}

// staticRelPath returns a sanitized path relative to the asset directory.
// It rejects traversal, absolute paths, dotfiles and config files.
func staticRelPath(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" || strings.IndexByte(rel, 0) != -1 || strings.Contains(rel, "\\") {
		return "", false
	}
	// "//etc/passwd" leaves a leading slash after trimming.
	if strings.HasPrefix(rel, "/") {
		return "", false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." || strings.HasPrefix(seg, ".") {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if clean == "." || strings.HasPrefix(clean, "../") || hiddenFiles[path.Base(clean)] {
		return "", false
	}
	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}
	return clean, true
}

// handleStatic serves page assets (stylesheets, scripts, images) for paths
// no route matched.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if s.assets == nil {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	rel, ok := staticRelPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := s.assets.Open(rel)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if isFingerprinted(rel) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		w.Header().Set("Cache-Control", "no-cache")
	}
	http.ServeContent(w, r, rel, info.ModTime(), rs)
}

// isFingerprinted reports whether the file name carries a content hash,
// e.g. "app.a1b2c3d4.css".
func isFingerprinted(filePath string) bool {
	parts := strings.Split(path.Base(filePath), ".")
	if len(parts) < 3 {
		return false
	}
	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
