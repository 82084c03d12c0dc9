package version

// Version is set at build time with -ldflags "-X github.com/csak/csak/version.Version=..."
var Version string
