// Package errors provides the error taxonomy shared by every fixture driver.
//
// Errors carry a machine-readable code so callers can tell a misconfigured
// target apart from a failing backend:
//
//	if errors.IsConfiguration(err) {
//	    // fix the key declaration, retrying will not help
//	}
//
// Backend failures wrap the original client error, so errors.Is and
// errors.As from the standard library keep matching it.
package errors
