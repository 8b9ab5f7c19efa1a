// Package mmap maps exported point files into memory for read-only access.
//
// LocalStore uses it so large CSV exports can be parsed without copying the
// whole file onto the heap. Platforms without mmap support fall back to
// reading the file.
package mmap
