package bender

// Version is the version of `ansible-bender`. It is injected at compile time.
var Version = "0.0.0"
