package config

// NewAppWithPath builds an App pointing at a config file, for tests
func NewAppWithPath(path string) *App {
	return &App{configPath: path}
}
