// Package main provides the entry point for the catering site application.
// It initializes and runs a web server using the Fiber framework that serves
// the public Vikas Caterings website and a REST API for managing site
// content, media uploads and contact form submissions. The application uses
// gorm for data persistence and stores the editable site content as a single
// JSON document merged over built-in defaults.
package main
