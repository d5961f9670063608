package main

// @title Catalog Service API
// @version 1.0
// @description Seller listings, buyer search and product reviews. List and detail
// @description responses carry the category path, seller name and live rating.

// @contact.name Catalog Team
// @contact.email catalog@tair.dev

// @host localhost:8081
// @BasePath /
// @schemes http

// @tag.name Products
// @tag.description Listing lifecycle and seller inventory
// @tag.name Search
// @tag.description Keyword search, filters and autocomplete
// @tag.name Categories
// @tag.description Category tree
// @tag.name Health

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token. Query parameters userId, adminId and role are read only when no token is sent.
