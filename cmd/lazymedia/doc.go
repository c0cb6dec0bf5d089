// Command lazymedia drives LazyVideo players from a YAML page description.
//
//	lazymedia render pages/index.yaml
//	lazymedia simulate --step 100 pages/index.yaml
//
// A page lists videos with their source, MIME type, height and vertical
// offset. render prints the players as they are first mounted. simulate
// scrolls a viewport over the page and reports the scroll offset at which
// each source was materialized.
package main
