// internal/pkgname/doc.go

/*
Package pkgname provides a structured representation of package names, which
are dot-separated sequences of segments such as `FslGraphics3D.API` or
`Recipe.zlib_1_2_11`.

The package centralizes parsing, namespace queries and the single ordering
used everywhere a list of package names must be emitted deterministically:
case-insensitive, with the raw name as tiebreak.
*/
package pkgname
