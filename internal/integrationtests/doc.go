// Package integration_tests runs the whole application against HCL
// descriptors written into temporary directories.
package integration_tests
