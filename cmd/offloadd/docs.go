package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           offloadd API
// @version         1.0
// @description     HTTP API for device placement and automatic CPU offload of large resources.
//
// @contact.name   offloadd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
