// Package config defines the format-agnostic descriptor model and the
// Loader interface that fills it.
//
// A descriptor holds a common section plus optional per-platform sections.
// Model.Packages flattens the descriptors for one platform into the raw
// packages the build-order stage consumes. Concrete loaders, such as the HCL
// one, live in separate packages.
package config
