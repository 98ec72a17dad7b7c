// Package mmap provides anonymous memory mappings.
//
// Mappings back the off-heap blocks of the tape package. Memory obtained
// here lives outside the Go heap: the garbage collector never scans or
// moves it, so addresses into a mapping are stable until Close.
package mmap
