package types

// Version is overwritten by -ldflags at build time
var Version = "dev"

// ServiceName is reported by the health endpoint and the CLI
const ServiceName = "pushbell"
