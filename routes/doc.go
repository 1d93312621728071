// Package routes models the routes of an application as seen by the
// document generator.
//
// A [Source] lists [Operation] values with their markers already
// associated. [Table] is the Source for routes registered in code:
//
//	table := routes.NewTable()
//	api := table.Group("/api", tagMarker).In("public")
//	api.GET("/users/:id", marker.Identity{Type: "app.Users", Method: "Show"})
//	table.Attach("app.Users", "Show", responseMarker)
//
// Router path syntax is converted to OpenAPI templates by [NormalizePath].
package routes
