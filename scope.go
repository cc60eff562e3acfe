package mcpbuilder

import (
	"net/url"
	"regexp"
)

// Scope decides whether a URL may be fetched during a crawl.
// A URL is in scope when its host equals Host, it fully matches at least one
// Allow pattern (or Allow is empty) and it matches no Deny pattern.
// Deny always wins over Allow.
type Scope struct {
	Host  string
	Allow []*regexp.Regexp
	Deny  []*regexp.Regexp
}

// NewScope builds a Scope for a crawl starting at startURL.
// Patterns must match the whole URL; they are anchored on both ends.
func NewScope(startURL string, allow, deny []string) (*Scope, error) {
	u, err := url.Parse(startURL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid start URL %q: %v", startURL, err)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "start URL %q has no host", startURL)
	}

	s := &Scope{Host: u.Host}
	if s.Allow, err = compilePatterns(allow); err != nil {
		return nil, err
	}
	if s.Deny, err = compilePatterns(deny); err != nil {
		return nil, err
	}
	return s, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	var out []*regexp.Regexp
	for _, pattern := range patterns {
		re, err := regexp.Compile(`^(?:` + pattern + `)$`)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid pattern %q: %v", pattern, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Allows returns true if the URL passes the host, allow and deny checks.
func (s *Scope) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != s.Host {
		return false
	}

	// If allow patterns exist, URL must match at least one
	if len(s.Allow) > 0 {
		matched := false
		for _, re := range s.Allow {
			if re.MatchString(rawURL) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range s.Deny {
		if re.MatchString(rawURL) {
			return false
		}
	}

	return true
}
