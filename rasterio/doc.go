// SPDX-License-Identifier: MIT

// Package rasterio persists raster.Grid values as MessagePack documents.
//
// Encode/Decode work on any io.Writer/io.Reader; FileStore keeps one
// "<name>.msgpack" file per grid in a directory and is the default raster
// store of the pipeline.
package rasterio
