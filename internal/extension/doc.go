// Package extension provides the components initialized during application
// bootstrap: password hashing, caching, CSRF protection, the debug toolbar,
// static asset fingerprinting and outgoing mail.
//
// Extensions are plain values collected in a [Set]. Each one is configured by
// its InitApp method and may additionally wrap requests ([Middleware]), expose
// routes ([Mounter]) or hold resources ([Closer]).
package extension
