// Package cli turns command-line arguments into an app.Config. Usage
// mistakes are reported as *ExitError carrying exit code 2; it never exits
// the process itself.
package cli
