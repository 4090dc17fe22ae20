package utils

import "strings"

// ResolveImageURL turns a stored image path into a displayable absolute
// URL. An empty path yields a kind-appropriate placeholder ("user",
// "movie", "book", ...); already-absolute paths pass through unchanged.
// Pure and side-effect free.
func ResolveImageURL(baseURL, path, kind string) string {
	if path == "" {
		return joinURL(baseURL, "static/placeholders/"+kind+".png")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return joinURL(baseURL, path)
}

func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
