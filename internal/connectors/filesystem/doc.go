// Package filesystem finds candidate JPEG files on the local filesystem.
//
// Source walks a directory once; Watcher follows it with fsnotify and
// throttles delivery with a token bucket.
package filesystem
