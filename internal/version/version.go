package version

// AppName is the binary name shown in banners and help output.
const AppName = "rpctl"

// Version is overridden at build time with -ldflags "-X ...version.Version=".
var Version = "0.1.0"
