package adaptor

// Version is the release of the adaptor. Overridden at build time with
// -ldflags "-X github.com/aretw0/adaptor.Version=...".
var Version = "0.1.0-dev"
