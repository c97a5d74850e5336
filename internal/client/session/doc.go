// Package session owns "who is signed in".
//
// A Store holds the current user and token in memory and mirrors them into
// durable storage under two keys, "<prefix>:token" and "<prefix>:user":
//
//	store := session.New(gateway, kv, session.Options{KeyPrefix: "@GoBarber"})
//	store.Start(ctx)       // restore in the background
//	_ = store.Wait(ctx)    // block until the restore finished
//	err := store.SignIn(ctx, email, password)
//
// # Lifecycle
//
//	Uninitialized -> Loading            New
//	Loading       -> Authenticated      restore found both entries
//	Loading       -> Anonymous          anything else
//	Anonymous     -> Authenticated      SignIn
//	Authenticated -> Anonymous          SignOut
//	Authenticated -> Authenticated      UpdateUser
//
// Every persisted mutation is written first and applied in memory right
// after it succeeded. Errors from the gateway and from storage are returned
// unchanged. Concurrent calls are not coordinated: the last writer wins.
package session
