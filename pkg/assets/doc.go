// Package assets manages the flag catalog: the TOML source listing, the
// validated JSON manifest built from it, and the fetching and
// rasterization of image-backed flag artwork.
//
// The flow is source -> manifest -> texture. A source file is the
// hand-edited listing of flags. Building a manifest validates every entry
// and drops the malformed ones, so downstream consumers only ever see
// flags that will render. Image-backed entries point at SVG or bitmap
// artwork that the fetcher retrieves (with caching and retry) and the
// rasterizer turns into textures for the renderer.
package assets
