package main

// General API documentation for swaggo. docs/docs.go is kept in step with these annotations by hand.
//
// @title           aigateway API
// @version         1.0
// @description     HTTP gateway for image generation and chat backed by hosted AI providers.
//
// @contact.name   aigateway maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
