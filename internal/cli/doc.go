// Package cli turns the idfgo command line into an app.Config. Usage errors
// come back as *ExitError carrying the process exit code.
package cli
