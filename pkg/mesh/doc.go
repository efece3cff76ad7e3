// Package mesh holds the 3D triangle-mesh side of the kernel: a
// vertex/face/normal mesh with a cached edge-to-face adjacency map,
// binary STL input, an SDF-based procedural mesh producer, and the
// silhouette pipeline that turns a mesh viewed along an axis into 2D
// boundary bodies ready for cutting.
package mesh
