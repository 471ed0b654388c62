// Package sink encodes sampled orbital data as JSON documents.
//
// Each renderer takes the sampled value plus [JSONOption] functional options
// and returns indented JSON:
//
//   - [RenderProfileJSON]: a radial profile with its descriptor
//   - [RenderCloudJSON]: a density point cloud
//   - [RenderLevelsJSON]: shell energies and allowed transitions
//   - [RenderStateJSON]: a saved view state, read back with [ParseState]
//
// A saved state records which orbital was shown and how; it is the
// export/import format of the CLI and HTTP API.
package sink
