// Package visualization renders mixer images for display and writes
// component previews and mix outputs to disk.
package visualization
