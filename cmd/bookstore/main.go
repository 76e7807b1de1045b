// Command bookstore runs the catalog API and its maintenance tasks.
//
//	@title						Bookstore Catalog API
//	@version					1.0
//	@description				Authors, genres and books with token authentication and cover uploads.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

func main() {
	Execute()
}
