package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL    string `arg:"" help:"Documentation URL to start crawling from"`
	Output string `arg:"" type:"path" help:"Directory to write the generated project to"`

	MaxPages      int           `short:"n" default:"20" help:"Maximum number of URLs to visit"`
	Timeout       time.Duration `short:"t" default:"10s" help:"Per-request timeout"`
	UserAgent     string        `default:"mcp-builder/0.1" help:"User-Agent header sent with every request"`
	Allow         []string      `short:"a" sep:"none" help:"Only crawl URLs fully matching this regex (repeatable)"`
	Deny          []string      `short:"d" sep:"none" help:"Never crawl URLs fully matching this regex (repeatable)"`
	Concurrency   int           `short:"c" default:"1" help:"Concurrent fetch limit (1 keeps breadth-first order)"`
	RPS           float64       `name:"rps" default:"0" help:"Requests per second per host (0 = unlimited)"`
	Sitemap       bool          `help:"Also queue in-scope pages listed in the site's sitemaps"`
	RespectRobots bool          `help:"Skip URLs disallowed by the site's robots.txt"`
	Retry         bool          `help:"Retry failed fetches after 1s, 2s and 4s"`
	SaveDocs      string        `type:"path" help:"Also save the crawled documents to this directory"`

	Model     string `short:"m" default:"gemini-2.5-flash" help:"Gemini model used for blueprint generation"`
	Heuristic bool   `help:"Skip the remote model and detect endpoints heuristically"`

	Verbose   bool   `short:"v" help:"Enable debug logging"`
	LogFormat string `enum:"text,json" default:"text" help:"Log format (text or json)"`
}
