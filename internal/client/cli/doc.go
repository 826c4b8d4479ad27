// Package cli provides the interactive GuiDipper terminal client.
//
// It wires configuration, the local session store, the API services and a
// REPL that mirrors the pages of the web client:
//
//	/             home
//	/login        log in
//	/signup       create an account
//	/upload       upload Google Maps bookmarks   (needs a session)
//	/preferences  trip preferences, route generation (needs a session)
//	/result       itinerary, assistant chat, approve/reject changes (needs a session)
//	/profile      account, avatar, username, saved routes (needs a session)
//
// Entering a page that needs a session re-validates it first; without a
// valid one the user is sent to /login. Every request shows a loading label
// that is cleared when the request ends.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
