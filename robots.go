package mcpbuilder

import "context"

// RobotsPolicy decides whether robots.txt permits fetching a URL.
// An unreachable robots.txt allows everything.
type RobotsPolicy interface {
	Allowed(ctx context.Context, rawURL string) bool
}
