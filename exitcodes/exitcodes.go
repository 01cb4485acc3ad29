// Package exitcodes defines the standard exit codes used by specreport.
package exitcodes

// Exit code constants used by specreport
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): Used when the run finished with no failing examples
// * TestFailure (1): Used when one or more examples failed
// * RuntimeErr (2): Used for runtime errors such as protocol violations or unwritable output
const (
	Success     = 0 // No failing examples
	TestFailure = 1 // Failing examples
	RuntimeErr  = 2 // Runtime errors or protocol violations
)
