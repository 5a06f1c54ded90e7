package mcp

import "net/http"

const landingHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>docsearch MCP Server</title>
<style>
  body { font: 15px/1.6 system-ui, sans-serif; max-width: 42rem; margin: 3rem auto; padding: 0 1rem; color: #222; }
  h2 { font-size: 1rem; margin-top: 2rem; border-bottom: 1px solid #ddd; }
  pre { background: #f4f4f4; padding: 0.75rem; overflow-x: auto; }
  dt { font-family: monospace; font-weight: bold; }
  dd { margin: 0 0 0.5rem 1.5rem; }
</style>
</head>
<body>
<h1>docsearch MCP Server</h1>
<p>Keyword search over a local document directory via the Model Context Protocol.</p>

<h2>Client configuration</h2>
<pre><code>{"mcpServers": {"docsearch": {"url": "http://localhost:8080/mcp"}}}</code></pre>

<h2>Endpoints</h2>
<dl>
  <dt><a href="/mcp">/mcp</a></dt><dd>MCP Streamable HTTP</dd>
  <dt><a href="/health">/health</a></dt><dd>Index readiness as JSON</dd>
</dl>

<h2>Tools</h2>
<dl>
  <dt>search_docs</dt><dd>Ranked documents with snippet, sections and matched keywords</dd>
  <dt>fetch_doc</dt><dd>Full document by id</dd>
  <dt>list_docs</dt><dd>Every indexed document</dd>
  <dt>similar_docs</dt><dd>Documents related to a given id</dd>
  <dt>get_index_status</dt><dd>Counts, types and last index time</dd>
  <dt>reindex</dt><dd>Rebuild from the documents directory</dd>
</dl>
</body>
</html>`

// NewLandingHandler returns an HTTP handler that serves the landing page at /.
func NewLandingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(landingHTML))
	}
}
