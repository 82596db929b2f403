// Package sdk provides a typed Go client for the hashdraft MCP server.
//
// The client wraps mcp-go/client.CallTool for the hashdraft_draft tool,
// with connection management and retry via fortify.
//
// Usage:
//
//	transport, _ := client.NewStdioTransport("hashdraft", "mcp")
//	c := sdk.NewClient(transport)
//	defer c.Close()
//
//	_, _ = c.Initialize(ctx)
//	res, _ := c.Draft(ctx, "#golang #gophers")
//	fmt.Println(res.Text)
package sdk
