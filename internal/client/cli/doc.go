// Package cli is the interactive terminal front end of the GoBarber client.
//
// The REPL waits for the session store to finish restoring before the first
// prompt, then dispatches commands to screens:
//
//	Signed out:
//	  signin, signup, forgot, help, exit
//
//	Signed in:
//	  dashboard, profile, avatar <path>, appointment <RFC3339 time>,
//	  whoami, signout, help, exit
//
// Screens validate input with the validation package before any network
// call. Request and storage failures are reported with one generic message
// per screen; validation failures list the offending fields.
package cli
