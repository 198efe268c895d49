package config

// Default returns configuration with the stock timings. These apply when
// no config file exists or when a file leaves fields unset.
func Default() *Config {
	return &Config{
		Motion: MotionConfig{
			Reduced:   false,
			GaugeMS:   1100,
			RevealMS:  650,
			StaggerMS: 90,
			FPS:       30,
		},
		Backend: BackendConfig{
			BaseURL:   "http://localhost:8000",
			TimeoutMS: 10000,
		},
		Server: ServerConfig{
			Addr: ":8723",
		},
	}
}

// Merge fills unset fields of loaded from defaults. Loaded values take
// precedence; zero values fall back.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}
	result.Motion = mergeMotion(loaded.Motion, defaults.Motion)
	result.Backend = mergeBackend(loaded.Backend, defaults.Backend)
	result.Server = mergeServer(loaded.Server, defaults.Server)
	return result
}

func mergeMotion(loaded, defaults MotionConfig) MotionConfig {
	result := MotionConfig{}

	// Reduced is a plain bool, so an absent key reads as false. Users who
	// want reduced motion set it explicitly or use the environment switch.
	result.Reduced = loaded.Reduced

	if loaded.GaugeMS != 0 {
		result.GaugeMS = loaded.GaugeMS
	} else {
		result.GaugeMS = defaults.GaugeMS
	}

	if loaded.RevealMS != 0 {
		result.RevealMS = loaded.RevealMS
	} else {
		result.RevealMS = defaults.RevealMS
	}

	if loaded.StaggerMS != 0 {
		result.StaggerMS = loaded.StaggerMS
	} else {
		result.StaggerMS = defaults.StaggerMS
	}

	if loaded.FPS != 0 {
		result.FPS = loaded.FPS
	} else {
		result.FPS = defaults.FPS
	}

	return result
}

func mergeBackend(loaded, defaults BackendConfig) BackendConfig {
	result := BackendConfig{}

	if loaded.BaseURL != "" {
		result.BaseURL = loaded.BaseURL
	} else {
		result.BaseURL = defaults.BaseURL
	}

	if loaded.TimeoutMS != 0 {
		result.TimeoutMS = loaded.TimeoutMS
	} else {
		result.TimeoutMS = defaults.TimeoutMS
	}

	return result
}

func mergeServer(loaded, defaults ServerConfig) ServerConfig {
	result := ServerConfig{}

	if loaded.Addr != "" {
		result.Addr = loaded.Addr
	} else {
		result.Addr = defaults.Addr
	}

	return result
}
