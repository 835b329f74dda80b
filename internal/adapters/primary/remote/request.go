package remote

import (
	"bytes"
	"net/url"
	"strings"
)

// Request is the parsed form of one request line. It lives for a single
// connection and is discarded after handling.
type Request struct {
	Path  string
	Query url.Values
}

// parseRequest extracts the path and query from the first line of a raw
// request. Parsing is deliberately lenient: the method and HTTP version are
// read but ignored, so any method sharing a path triggers the same action,
// and header lines and bodies are never inspected. Existing remote clients
// depend on this permissiveness.
func parseRequest(raw []byte) (Request, bool) {
	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}
	line = bytes.TrimRight(line, "\r")

	fields := strings.Fields(string(line))
	if len(fields) < 2 {
		return Request{}, false
	}

	path, rawQuery, _ := strings.Cut(fields[1], "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}

	return Request{Path: path, Query: query}, true
}
