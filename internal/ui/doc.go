// Package ui implements the Bubble Tea model for the browse screen: a
// vertical stack of titled rows filled asynchronously from the catalog,
// arrow-key 2D selection, and the tile grow/shrink animation.
//
// The model is the single control context. Input events, fetch deliveries,
// and animation frames are processed strictly one message at a time, so
// tree mutations never overlap; only the fetch workers run concurrently,
// and they communicate exclusively through the runner's token-tagged
// event channel.
package ui
