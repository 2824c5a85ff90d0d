package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const docsPageContent = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Product Service API</title>
    <style>
        body { font-family: Helvetica, Arial, sans-serif; line-height: 1.6; padding: 20px; background-color: #f9f9f9; color: #333; }
        h1, h2 { border-bottom: 1px solid #ccc; padding-bottom: 5px; }
        ul { list-style: none; padding-left: 0; }
        li { margin-bottom: 15px; background-color: #fff; padding: 10px; border: 1px solid #eee; border-radius: 4px; }
        code { background-color: #e8e8e8; padding: 3px 6px; border-radius: 3px; font-family: Consolas, Monaco, monospace; }
        .method { font-weight: bold; display: inline-block; width: 60px; }
        .method-post { color: #49cc90; }
        .method-get { color: #61affe; }
        .method-put { color: #fca130; }
        .method-delete { color: #f93e3e; }
    </style>
</head>
<body>
    <h1>Product Service API Endpoints</h1>
    <p>Product body: <code>{"id": int, "name": string|null, "price": number, "description": string|null}</code></p>

    <h2>Products API</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/products">/products</a></code> - List all products. <code>200</code></li>
        <li><span class="method method-get">GET</span> <code>/products/{id}</code> - Retrieve a product. <code>200</code>, or <code>404</code>.</li>
        <li><span class="method method-post">POST</span> <code>/products</code> - Create a product; any <code>id</code> in the body is ignored. <code>201</code> with a <code>Location</code> header, or <code>400</code>.</li>
        <li><span class="method method-put">PUT</span> <code>/products/{id}</code> - Replace every field of a product. The body <code>id</code> must equal the path id. <code>204</code>, <code>400</code>, or <code>404</code>.</li>
        <li><span class="method method-delete">DELETE</span> <code>/products/{id}</code> - Delete a product. <code>204</code>, or <code>404</code>.</li>
    </ul>

    <h2>Operations</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/healthz">/healthz</a></code> - Database reachability.</li>
    </ul>
</body>
</html>
`

func serveDocsPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsPageContent))
}
