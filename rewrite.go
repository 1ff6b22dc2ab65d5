package main

import (
	"net/url"
	"regexp"
	"strings"
)

// SourceURL is a validated page address with the prefixes used to absolutize
// relative links
type SourceURL struct {
	Raw string
	// Root is scheme://host
	Root string
	// Base is the page URL up to (not including) its last path slash
	Base string
}

// parseSourceURL validates srcurl and derives its root and base
func parseSourceURL(raw string) (*SourceURL, error) {
	if raw == "" {
		return nil, InvalidArgument("no srcurl parameter passed")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, InvalidArgument("srcurl parameter is not an http(s) URL")
	}
	if !strings.HasPrefix(u.EscapedPath(), "/") {
		return nil, InvalidArgument("srcurl parameter does not have a slash")
	}

	root := normalizeRoot(u.Scheme + "://" + u.Host)
	path := u.EscapedPath()
	base := root + path[:strings.LastIndex(path, "/")]

	return &SourceURL{Raw: raw, Root: root, Base: base}, nil
}

// normalizeRoot lowercases a scheme://host root and drops trailing slashes
func normalizeRoot(root string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(root)), "/")
}

// AllowList holds the roots that may be fetched
type AllowList struct {
	roots map[string]bool
}

// NewAllowList creates an allow-list from scheme://host roots
func NewAllowList(roots []string) *AllowList {
	al := &AllowList{roots: make(map[string]bool, len(roots))}
	for _, r := range roots {
		if r = normalizeRoot(r); r != "" {
			al.roots[r] = true
		}
	}
	return al
}

// Check returns an error unless src is under an allowed root
func (al *AllowList) Check(src *SourceURL) error {
	if !al.roots[src.Root] {
		return ForbiddenSource(src.Root)
	}
	return nil
}

var (
	// href="/path" or src='/path', but not protocol-relative "//host"
	absPathAttr = regexp.MustCompile(`(?i)( href| src)=(.)/(/?)`)
	// href="file.html", src="logo.png"
	bareFileAttr = regexp.MustCompile(`(?i)( href| src)=(.)([a-zA-Z][^:./]*\.)`)
)

// rewriteRelativeURLs points root-relative and bare-file href/src values at
// the source site so the proxied page keeps its images, scripts and styles
func rewriteRelativeURLs(doc string, src *SourceURL) string {
	doc = replaceSubmatches(doc, absPathAttr, func(g []string) string {
		if g[3] == "/" {
			return g[0]
		}
		return g[1] + "=" + g[2] + src.Root + "/"
	})
	return replaceSubmatches(doc, bareFileAttr, func(g []string) string {
		return g[1] + "=" + g[2] + src.Base + "/" + g[3]
	})
}

// replaceSubmatches is ReplaceAllStringFunc with access to capture groups
func replaceSubmatches(s string, re *regexp.Regexp, fn func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(matches)*32)
	last := 0
	for _, loc := range matches {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(s[last:loc[0]])
		b.WriteString(fn(groups))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
