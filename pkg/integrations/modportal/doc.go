// Package modportal provides an HTTP client for the Factorio mod portal API.
//
// # Usage
//
//	client := modportal.NewClient(modportal.Options{})
//	mod, err := client.FetchMod(ctx, "flib")
//	if errors.Is(err, integrations.ErrNotFound) {
//	    // not published
//	}
//	fmt.Println(mod.Versions())
//
// The client requests GET {base}/mods/{name} once per call with a 10 second
// timeout by default. There is no retry and no caching.
package modportal
