// Package output renders sweep records for people and for other programs.
//
// # Naming Conventions
//
//   - Write* functions write data to files on the filesystem.
//   - Print* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
package output
