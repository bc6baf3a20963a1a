// Package session implements the analysis session controller.
//
// A Controller drives one analysis at a time through the states
// Idle, Submitting, Polling, Completed and Failed:
//
//	Idle --Submit--> Submitting --accepted--> Polling --completed--> Completed
//	                     |                       |
//	                     +--rejected--> Idle     +--error--> Failed --Submit--> Submitting
//
// Reset returns to Idle from any state.
//
// While polling, the job status is requested every poll interval. Failed
// status requests are logged and otherwise ignored; the next tick simply
// tries again. When the server reports completion, the controller waits a
// short redirect delay and then hands the results URL to its Navigator.
//
// Presentation is delegated to a View. View and Navigator methods are called
// while the controller holds its lock, in the order the transitions happen,
// so implementations must not call back into the Controller.
package session
