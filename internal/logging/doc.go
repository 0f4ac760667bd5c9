// Package logging provides the logging interface shared by resmon's
// components and its zerolog-backed implementation.
package logging
