// Package inspect reads build identity out of compiled Go artifacts.
//
// Reports can be produced from binaries on disk, gzipped release archives,
// remote artifact URLs, or the running process itself.
package inspect
