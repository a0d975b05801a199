// Package mcp provides an MCP (Model Context Protocol) server adapter for textannot.
// It lets AI assistants read sentences of one open document and annotate them.
package mcp

import "errors"

// ErrMissingSession is returned when no annotation session is provided.
var ErrMissingSession = errors.New("mcp: annotation session is required")
