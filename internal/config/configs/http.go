package configs

// HTTP configures the dashboard API server started by the serve command.
type HTTP struct {
	// Port is the TCP port the server listens on.
	Port uint16 `env:"PORT" envDefault:"8080"`
}
