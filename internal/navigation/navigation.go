// Package navigation maps request paths to portal page names and back.
package navigation

import "strings"

// Resolver knows the portal's pages. MainPage is served for "/" and falls
// back to the first page when empty.
type Resolver struct {
	Pages    []string
	MainPage string
}

func NewResolver(pages []string, mainPage string) *Resolver {
	return &Resolver{Pages: pages, MainPage: mainPage}
}

func (r *Resolver) mainPage() (string, bool) {
	if r.MainPage != "" {
		return r.MainPage, true
	}
	if len(r.Pages) > 0 {
		return r.Pages[0], true
	}
	return "", false
}

// Resolve returns the page name for path. The first path segment is matched
// against page names case-insensitively, with "-" standing for a space.
func (r *Resolver) Resolve(path string) (string, bool) {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return r.mainPage()
	}

	segment := trimmed
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		segment = trimmed[:i]
	}
	segment = strings.ReplaceAll(segment, "-", " ")

	for _, p := range r.Pages {
		if strings.EqualFold(p, segment) {
			return p, true
		}
	}
	return "", false
}

// PageURL returns the path of a page: "/" plus the name with spaces as "-".
func PageURL(name string) string {
	return "/" + strings.ReplaceAll(name, " ", "-")
}
